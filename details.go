package constellation

import "fmt"

// DetailsMode tells why details are shown.
type DetailsMode uint8

const (
	// DetailsHover describes the skill under the pointer.
	DetailsHover DetailsMode = iota
	// DetailsDrag describes the skill being dragged.
	DetailsDrag
	// DetailsNone is shown when the pointer is over empty space.
	DetailsNone
	// DetailsLeave is shown after the pointer left the graph.
	DetailsLeave
)

func (m DetailsMode) String() string {
	switch m {
	case DetailsHover:
		return "hover"
	case DetailsDrag:
		return "drag"
	case DetailsNone:
		return "none"
	case DetailsLeave:
		return "leave"
	}
	return fmt.Sprintf("DetailsMode(%d)", m)
}

// Placeholder texts shown without a skill.
const (
	PromptExplore   = "Hover or drag skills to explore"
	PromptHover     = "Hover over skills to see details"
	PromptIntro     = "This interactive visualization shows my skills. Skills are connected based on their relationships."
	emptyLevelLabel = "-"
)

// Details is the content of the details panel.
type Details struct {
	Mode        DetailsMode
	Name        string
	Level       string
	Description string
	Group       string
	// Skill is false for the placeholder texts.
	Skill bool
}

// DetailsSink receives details updates from pointer events. Calls are
// made with the graph lock held; implementations must not call back into
// the graph.
type DetailsSink interface {
	ShowDetails(Details)
}

// DetailsFunc adapts a function to DetailsSink.
type DetailsFunc func(Details)

// ShowDetails implements DetailsSink.
func (f DetailsFunc) ShowDetails(d Details) { f(d) }

// PanelSizer is implemented by sinks that cover the bottom of the graph
// and know their height in CSS pixels.
type PanelSizer interface {
	PanelHeight() float64
}

func skillDetails(n *node, mode DetailsMode) Details {
	s := n.skill
	return Details{
		Mode:        mode,
		Name:        s.Name,
		Level:       s.Level.String(),
		Description: s.DescriptionOrDefault(),
		Group:       s.GroupKey(),
		Skill:       true,
	}
}

func placeholderDetails(mode DetailsMode) Details {
	name := PromptExplore
	if mode == DetailsLeave {
		name = PromptHover
	}
	return Details{Mode: mode, Name: name, Level: emptyLevelLabel, Description: PromptIntro}
}

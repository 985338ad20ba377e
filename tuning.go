package constellation

// Tuning constants for the look of the animation.
const (
	defaultHeight      = 500.0
	defaultPanelHeight = 90.0
	maxPixelRatio      = 2.0

	// Layout bottom insets added to the details panel height.
	layoutInsetExtra  = 46.0
	physicsInsetExtra = 26.0

	clusterRadiusFactor = 0.42

	friction       = 0.985
	maxSpeed       = 1.7
	springK        = 0.0005
	springDeadZone = 5.0
	easeRate       = 0.1

	collisionReach = 2.3
	collisionForce = 0.04

	hoverReach   = 1.3
	boundsMargin = 12.0
	bounceDamp   = 0.5

	dimmedOpacity  = 0.2
	glowIdle       = 0.2
	glowActive     = 0.8
	zBaseline      = 0
	zRaised        = 100
	zDragged       = 200
	releaseDelayMS = 350.0

	noiseTimeScale = 0.0001
	noiseAccel     = 0.04

	pulseAmplitude   = 0.07
	orbitSpeed       = 0.01
	hoverOrbitBoost  = 1.3
	levelSweepPerMS  = 0.002
	defaultLevel     = 0.7
	defaultSkillSize = 40.0
	radiusPerSize    = 0.65

	defaultMaxParticles  = 120
	spawnChance          = 0.05
	spawnChanceHovered   = 0.35
	hoveredParticleBoost = 1.35
	particleFadeStart    = 0.82
	particleFade         = 0.95
	controlJitter        = 90.0

	linkAlpha        = 0.12
	linkAlphaActive  = 0.38
	linkBend         = 28.0
	linkWidth        = 1.2
	hiddenOpacityCut = 0.1
	invisibleCut     = 0.05
)

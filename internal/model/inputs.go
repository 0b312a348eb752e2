package model

// SimulationInputs bundles everything one simulation run consumes.
type SimulationInputs struct {
	Series *Series
	Sensor SensorParams
}

package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// RecorderConfig controls recording of control loop samples into the database
type RecorderConfig struct {
	Enabled bool `json:"enabled"`
	// SampleEvery n-th iteration is recorded
	SampleEvery int `json:"sampleEvery"`
	// MaxSamples kept in memory, older samples are dropped
	MaxSamples int `json:"maxSamples"`
}

package config

var Presets = map[string]map[string]*Config{
	"polyexp": {
		"coarse": {
			Problem: "polyexp", Method: "rk4", Step: 0.1, Steps: 10,
		},
		"fine": {
			Problem: "polyexp", Method: "rk4", Step: 0.001, Steps: 1000,
		},
		"adams": {
			Problem: "polyexp", Method: "adams4", Step: 0.01, Steps: 100, Iterations: 1,
		},
	},
	"riccati": {
		"safe": {
			Problem: "riccati", Method: "rk4", Step: 0.01, Steps: 90,
		},
		"edge": {
			Problem: "riccati", Method: "rk5", Step: 0.001, Steps: 990,
		},
	},
	"decay": {
		"fast": {
			Problem: "decay", Method: "rk2", Step: 0.01, Steps: 500,
		},
		"multistep": {
			Problem: "decay", Method: "adams4", Step: 0.01, Steps: 500, Iterations: 1,
		},
	},
	"quinney": {
		"corrected": {
			Problem: "quinney", Method: "adams4", Step: 0.1, Steps: 10, Iterations: 10,
		},
		"predictor": {
			Problem: "quinney", Method: "adams4", Step: 0.1, Steps: 10, Iterations: 0,
		},
	},
	"oscillator": {
		"period": {
			Problem: "oscillator", Method: "rk4", Step: 0.01, Steps: 100,
		},
		"drift": {
			Problem: "oscillator", Method: "adams6", Step: 0.01, Steps: 10000, Iterations: 1,
		},
		"coarse": {
			Problem: "oscillator", Method: "rk2", Step: 0.05, Steps: 2000,
		},
	},
	"rotation": {
		"circle": {
			Problem: "rotation", Method: "rk4", Step: 0.01, Steps: 100,
		},
		"spectrum": {
			Problem: "rotation", Method: "rk4", Step: 0.005, Steps: 4096,
		},
	},
}

func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	return names
}

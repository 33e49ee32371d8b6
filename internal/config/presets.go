package config

func preset(mut func(*Config)) *Config {
	cfg := DefaultConfig()
	mut(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"stack": {
		"small": preset(func(c *Config) {
			c.Scene = "stack"
			c.Duration = 5.0
		}),
		"tall": preset(func(c *Config) {
			c.Scene = "stack"
			c.Duration = 15.0
			c.Solver.VelocityIterations = 16
			c.Solver.PositionIterations = 6
		}),
		"cold": preset(func(c *Config) {
			c.Scene = "stack"
			c.Duration = 15.0
			c.Solver.WarmStart = false
		}),
	},
	"pyramid": {
		"settle": preset(func(c *Config) {
			c.Scene = "pyramid"
			c.Duration = 10.0
			c.Solver.VelocityIterations = 12
		}),
		"loose": preset(func(c *Config) {
			c.Scene = "pyramid"
			c.Duration = 10.0
			c.Solver.MixFriction = "min"
		}),
	},
	"bounce": {
		"lively": preset(func(c *Config) {
			c.Scene = "bounce"
			c.Duration = 8.0
			c.Solver.MixRestitution = "max"
		}),
		"dead": preset(func(c *Config) {
			c.Scene = "bounce"
			c.Duration = 8.0
			c.Solver.MixRestitution = "mul"
		}),
	},
	"mixer": {
		"default": preset(func(c *Config) {
			c.Scene = "mixer"
			c.Duration = 12.0
		}),
		"avg": preset(func(c *Config) {
			c.Scene = "mixer"
			c.Duration = 12.0
			c.Solver.MixFriction = "avg"
			c.Solver.MixRestitution = "avg"
		}),
	},
	"pendulum": {
		"swing": preset(func(c *Config) {
			c.Scene = "pendulum"
			c.Duration = 10.0
		}),
		"stiff": preset(func(c *Config) {
			c.Scene = "pendulum"
			c.Duration = 10.0
			c.Solver.VelocityIterations = 16
		}),
	},
	"plinko": {
		"drop": preset(func(c *Config) {
			c.Scene = "plinko"
			c.Duration = 15.0
		}),
		"icy": preset(func(c *Config) {
			c.Scene = "plinko"
			c.Duration = 15.0
			c.Solver.MixFriction = "mul"
		}),
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}

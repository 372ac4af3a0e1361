package config

// FindCase returns the branch case with the given key, or nil.
func (cfg *Config) FindCase(key string) *BranchCase {
	if key == "" {
		return nil
	}
	for _, bc := range cfg.Branches {
		if bc != nil && bc.Key() == key {
			return bc
		}
	}
	return nil
}

// DefaultCase returns the configured default case, or an empty one.
func (cfg *Config) DefaultCase() *BranchCase {
	if cfg.Default == nil {
		return &BranchCase{Name: DefaultCaseName}
	}
	return cfg.Default
}

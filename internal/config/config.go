package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for listnorm.
type Config struct {
	Data      DataConfig      `toml:"data"`
	Input     InputConfig     `toml:"input"`
	Output    OutputConfig    `toml:"output"`
	Reference ReferenceConfig `toml:"reference"`
	Defaults  DefaultsConfig  `toml:"defaults"`
	Server    ServerConfig    `toml:"server"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type InputConfig struct {
	Dir string `toml:"dir"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
}

type ReferenceConfig struct {
	Path string `toml:"path"`
}

type DefaultsConfig struct {
	Country string `toml:"country"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:      DataConfig{Dir: "data"},
		Input:     InputConfig{Dir: "data/raw"},
		Output:    OutputConfig{Dir: "data/processed"},
		Reference: ReferenceConfig{Path: "data/reference/pincodes.csv"},
		Defaults:  DefaultsConfig{Country: "India"},
		Server:    ServerConfig{Host: "localhost", Port: 8080},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

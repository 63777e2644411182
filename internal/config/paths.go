package config

import "path/filepath"

// BaseDir is the directory relative paths resolve against.
func (c *Config) BaseDir() string {
	if c.baseDir == "" {
		return "."
	}
	return c.baseDir
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir(), p)
}

// ContentRoot is the resolved content tree root.
func (c *Config) ContentRoot() string { return c.resolve(c.Content.Root) }

// ProjectDir is the Astro project directory: where the generated config file
// lives.
func (c *Config) ProjectDir() string { return c.resolve(c.Output.Directory) }

// OutputPath is the resolved path of the generated config file.
func (c *Config) OutputPath() string {
	return filepath.Join(c.ProjectDir(), c.Output.Filename)
}

// ManifestPath is the resolved path of the run manifest.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.ProjectDir(), ManifestFilename)
}

// ManifestFilename is the run manifest written next to the output.
const ManifestFilename = ".sitecfg-manifest.json"

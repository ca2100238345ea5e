package config

import "mcdevkit/internal/software"

// DefaultPort is the Minecraft server port used when none is requested.
const DefaultPort = 25565

// DefaultMemoryMB is the default maximum heap size handed to the JVM.
const DefaultMemoryMB = 2048

// WorkingDirectory is either an explicit path given by the user or a request
// to generate a fresh temporary workspace.
type WorkingDirectory struct {
	path     string
	explicit bool
}

// Generate asks for a generated temporary workspace.
func Generate() WorkingDirectory {
	return WorkingDirectory{}
}

// Explicit uses path as the workspace.
func Explicit(path string) WorkingDirectory {
	return WorkingDirectory{path: path, explicit: true}
}

// IsExplicit reports whether a user path was given.
func (w WorkingDirectory) IsExplicit() bool {
	return w.explicit
}

// Path returns the explicit path, or "" for Generate.
func (w WorkingDirectory) Path() string {
	return w.path
}

func (w WorkingDirectory) String() string {
	if !w.explicit {
		return "<generated>"
	}
	return w.path
}

// Endpoints groups the remote URLs and the java executable. Overridable from a
// preset so runs can be pointed at mirrors.
type Endpoints struct {
	Manifest string `yaml:"manifest"`
	Paper    string `yaml:"paper"`
	Java     string `yaml:"java"`
}

// ServerConfig is the validated input of one `start` invocation.
// - Software/Version: what to download.
// - Plugins: plugin files or bundles, copied in order.
// - WorkDir: explicit path or Generate.
// - Args: extra server arguments; --nogui and --port are appended during setup.
type ServerConfig struct {
	Software  software.Software
	Version   string
	Plugins   []string
	WorkDir   WorkingDirectory
	Args      []string
	MemoryMB  int
	GUI       bool
	Port      int
	Debug     bool
	Endpoints Endpoints
}

package config

// Config is the top-level YAML structure.
type Config struct {
	Version string     `yaml:"version"`
	Server  ServerConf `yaml:"server"`
	Tables  Tables     `yaml:"tables"`
}

// ServerConf holds tunable limits for the HTTP surface and event history.
type ServerConf struct {
	MaxEvents int `yaml:"max_events"` // 0 = unbounded history
	MaxBatch  int `yaml:"max_batch"`
}

// Tables is the classifier's static lookup data. It is read once per load
// and never mutated; a reload produces a fresh Tables value.
type Tables struct {
	Categories []CategoryDef `yaml:"categories"`
	Kinds      []KindDef     `yaml:"kinds"`
	Palette    Palette       `yaml:"palette"`
	Display    DisplayConf   `yaml:"display"`
}

// CategoryDef assigns a display color to one of the fixed categories.
type CategoryDef struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// KindDef describes one event kind.
// Opens and Closes name the pair type the kind starts or finishes; at most
// one of them is set. Label relabels an opening kind in the entry list.
type KindDef struct {
	Kind     string `yaml:"kind"`
	Category string `yaml:"category"`
	Color    string `yaml:"color"`
	Opens    string `yaml:"opens,omitempty"`
	Closes   string `yaml:"closes,omitempty"`
	Label    string `yaml:"label,omitempty"`
	Error    bool   `yaml:"error,omitempty"`
}

// Palette holds the status colors.
type Palette struct {
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
	Info    string `yaml:"info"`
	Muted   string `yaml:"muted"`
	Unknown string `yaml:"unknown"`
}

// DisplayConf tunes text derived for the entry list.
type DisplayConf struct {
	TruncateAt     int    `yaml:"truncate_at"`
	SessionIDChars int    `yaml:"session_id_chars"`
	TimeZone       string `yaml:"time_zone"`
	TimeFormat     string `yaml:"time_format"`
}

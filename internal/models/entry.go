package models

// EntryType is the structural type of a filesystem entry.
// Every entry seen during a walk maps to exactly one EntryType.
type EntryType uint8

const (
	Directory EntryType = iota
	RegularFile
	Symlink
	BlockDevice
	CharDevice
	Fifo
	Socket
	JunctionPoint
	Unknown
)

// NoExtension is the extension recorded for files whose name has no suffix.
const NoExtension = "no extension"

// ReportOrder lists every EntryType in the column order used by reports.
var ReportOrder = []EntryType{
	Directory,
	RegularFile,
	BlockDevice,
	CharDevice,
	JunctionPoint,
	Socket,
	Symlink,
	Fifo,
	Unknown,
}

// String returns the lowercase name of the entry type.
func (t EntryType) String() string {
	switch t {
	case Directory:
		return "directory"
	case RegularFile:
		return "file"
	case Symlink:
		return "symlink"
	case BlockDevice:
		return "block_device"
	case CharDevice:
		return "char_device"
	case Fifo:
		return "fifo"
	case Socket:
		return "socket"
	case JunctionPoint:
		return "junction"
	default:
		return "unknown"
	}
}

// Label returns the human-readable name used in report headers.
func (t EntryType) Label() string {
	switch t {
	case Directory:
		return "Directories"
	case RegularFile:
		return "File"
	case Symlink:
		return "Symlink"
	case BlockDevice:
		return "Block device"
	case CharDevice:
		return "Char device"
	case Fifo:
		return "Fifo"
	case Socket:
		return "Socket"
	case JunctionPoint:
		return "Junction"
	default:
		return "Unknown"
	}
}

// FileRecord describes one registered non-directory entry.
type FileRecord struct {
	Name      string `json:"name" yaml:"name"`           // Base name of the entry
	Path      string `json:"path" yaml:"path"`           // Canonical absolute path, the index key
	Extension string `json:"extension" yaml:"extension"` // Suffix including the dot, or NoExtension
	Size      int64  `json:"size" yaml:"size"`           // Size in bytes, 0 when unavailable
}

// DirectoryIdentity identifies a physical directory independent of the
// path used to reach it. Platforms without device/inode numbers fall back
// to the fully resolved path in Key.
type DirectoryIdentity struct {
	Device uint64
	Inode  uint64
	Key    string
}

// Counters holds one counter per EntryType.
type Counters struct {
	Directories  int `json:"directories" yaml:"directories"`
	Files        int `json:"files" yaml:"files"`
	Symlinks     int `json:"symlinks" yaml:"symlinks"`
	BlockDevices int `json:"block_devices" yaml:"block_devices"`
	CharDevices  int `json:"char_devices" yaml:"char_devices"`
	Fifos        int `json:"fifos" yaml:"fifos"`
	Sockets      int `json:"sockets" yaml:"sockets"`
	Junctions    int `json:"junctions" yaml:"junctions"`
	Unknown      int `json:"unknown" yaml:"unknown"`
}

// counter returns a pointer to the field backing t.
func (c *Counters) counter(t EntryType) *int {
	switch t {
	case Directory:
		return &c.Directories
	case RegularFile:
		return &c.Files
	case Symlink:
		return &c.Symlinks
	case BlockDevice:
		return &c.BlockDevices
	case CharDevice:
		return &c.CharDevices
	case Fifo:
		return &c.Fifos
	case Socket:
		return &c.Sockets
	case JunctionPoint:
		return &c.Junctions
	default:
		return &c.Unknown
	}
}

// Increment adds one to the counter for t.
func (c *Counters) Increment(t EntryType) {
	*c.counter(t)++
}

// Get returns the current value of the counter for t.
func (c Counters) Get(t EntryType) int {
	return *c.counter(t)
}

// Total returns the sum of all nine counters. It is never cached.
func (c Counters) Total() int {
	return c.Directories + c.Files + c.Symlinks + c.BlockDevices + c.CharDevices +
		c.Fifos + c.Sockets + c.Junctions + c.Unknown
}

// NonDirectories returns the number of entries counted under any type
// other than Directory.
func (c Counters) NonDirectories() int {
	return c.Total() - c.Directories
}

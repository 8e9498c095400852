package models

import "time"

// FileInfo describes one FileSet member inside a snapshot
type FileInfo struct {
	Name    string    `json:"name" yaml:"name"`
	Present bool      `json:"present" yaml:"present"`
	Size    int64     `json:"size,omitempty" yaml:"size,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty" yaml:"mod_time,omitempty"`
}

// Info is the read-only view of a snapshot, derived from the filesystem.
// The directory name is the only stored metadata.
type Info struct {
	Name      string     `json:"name" yaml:"name"`
	Timestamp time.Time  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Files     []FileInfo `json:"files" yaml:"files"`
	TotalSize int64      `json:"total_size" yaml:"total_size"`
	Complete  bool       `json:"complete" yaml:"complete"`
}

// Missing returns the FileSet members absent from the snapshot
func (i Info) Missing() []string {
	var missing []string
	for _, f := range i.Files {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

package domain

// Snapshot is a consistent read of the catalog and the room layout used for one
// validation pass. Assignments is only populated by file-based snapshots.
type Snapshot struct {
	Sectors     []*Sector          `yaml:"sectors"`
	Rooms       []*Room            `yaml:"rooms"`
	Rules       []*SupervisionRule `yaml:"rules"`
	Assignments []*Assignment      `yaml:"assignments"`
}

package domain

// SystemFolderPrefix marks folders regenerated from the tag registry.
// They are rebuilt wholesale on every catalog refresh and never user-edited.
const SystemFolderPrefix = "sys_"

// Folder is an ordered, named collection of problems, either derived
// from a tag (system folder) or owned by the user (custom folder).
//
// A problem may appear in several folders but never twice within one;
// AddProblem enforces that on insert.
type Folder struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug,omitempty"`
	Problems []Problem `json:"problems"`
	IsCustom bool      `json:"isCustom"`
}

// SystemFolderID returns the id of the system folder for a tag.
func SystemFolderID(tag string) string {
	return SystemFolderPrefix + tag
}

// AddProblem appends p preserving insertion order.
// Returns false when the folder already contains the same problem id.
func (f *Folder) AddProblem(p Problem) bool {
	if f.Contains(p.ID) {
		return false
	}
	f.Problems = append(f.Problems, p)
	return true
}

// RemoveProblem deletes the problem with the given id, keeping order.
// Returns false when the folder does not contain it.
func (f *Folder) RemoveProblem(id string) bool {
	for i := range f.Problems {
		if f.Problems[i].ID == id {
			f.Problems = append(f.Problems[:i], f.Problems[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the folder holds the problem id.
func (f *Folder) Contains(id string) bool {
	for i := range f.Problems {
		if f.Problems[i].ID == id {
			return true
		}
	}
	return false
}

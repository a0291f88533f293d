package options

type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

func (s SortOrder) String() string {
	if s == SortDesc {
		return "DESC"
	}

	return "ASC"
}

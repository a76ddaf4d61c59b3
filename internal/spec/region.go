package spec

//go:generate go tool stringer -type=Region -trimprefix=Region -output=region_string.go

// Region is the state the parameter scan is in at a given index. Regions
// only advance as the index grows.
type Region int

const (
	_ Region = iota

	RegionPositionalOnly
	RegionPositionalOrKeyword
	RegionOptional
	RegionKeywordOnly
	RegionRequiredKeywordOnly
)

package loaders

type ResourceType uint8

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeScene
)

/** @brief A loaded resource and the file it came from. */
type Resource struct {
	Name     string
	FullPath string
	Type     ResourceType
	Data     interface{}
}

package supporters

// Sources for the static inputs.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceBucket  = "bucket"
)

// Config selects where the supporter list, alias table and tier table are read from.
type Config struct {
	// Source is builtin, file or bucket.
	Source string `mapstructure:"source" default:"builtin"`
	// Path is the local YAML file used by the file source.
	Path string `mapstructure:"path" default:"supporters.yaml"`
	// ObjectKey is the object read from the storage bucket by the bucket source.
	ObjectKey string `mapstructure:"object_key" default:"config/supporters.yaml"`
}

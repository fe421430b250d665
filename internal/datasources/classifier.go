package datasources

// Classifier assigns themes to joke text. Implementations return at least one theme ID.
type Classifier interface {
	Classify(text string) []int64
}

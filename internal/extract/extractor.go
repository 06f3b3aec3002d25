package extract

// Extractor converts a fetched page into a Document. Implementations
// should be deterministic and free of side effects.
type Extractor interface {
    Extract(input []byte) Document
}

// HeuristicExtractor uses FromHTML.
type HeuristicExtractor struct{}

func (HeuristicExtractor) Extract(input []byte) Document {
    return FromHTML(input)
}

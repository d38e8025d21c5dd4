package extract

// TextExtractor converts raw PDF bytes to plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

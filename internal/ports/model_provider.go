package ports

// ModelProvider defines the contract for the optional statistical classifier
//
// Implementations are loaded once at startup by a persistence loader and are
// read-only afterwards, so they must be safe for concurrent use. Label is
// 0 (benign) or 1 (malicious); confidence is the model's probability of the
// malicious class in [0,1].
type ModelProvider interface {
	// ClassifyURL classifies a URL feature vector (see detection.FeatureVector
	// for the fixed feature order the model was trained with)
	ClassifyURL(features []float64) (label int, confidence float64)

	// VectorizeText converts raw text into the model's text feature space
	VectorizeText(text string) []float64

	// ClassifyText classifies a vectorized text
	ClassifyText(features []float64) (label int, confidence float64)
}

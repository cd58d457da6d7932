package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/sentinelai/phishguard/internal/domain/detection"
)

// LoadError reports a missing or corrupt model artifact
//
// It is recoverable by design: the caller switches the engine to Degraded
// mode instead of failing the process.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("model artifact %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// artifact is the on-disk JSON layout of a trained model
//
// Two linear classifiers: one over the URL feature vector (weights must match
// detection's fixed feature order), one over a bag-of-words text vector
// (weights parallel to the vocabulary).
type artifact struct {
	URLWeights  []float64 `json:"url_weights"`
	URLBias     float64   `json:"url_bias"`
	Vocabulary  []string  `json:"vocabulary"`
	TextWeights []float64 `json:"text_weights"`
	TextBias    float64   `json:"text_bias"`
}

// FileModel implements ports.ModelProvider from a JSON artifact on disk.
// Read-only after load, safe for concurrent use.
type FileModel struct {
	urlWeights  []float64
	urlBias     float64
	vocabulary  map[string]int // term -> index into textWeights
	textWeights []float64
	textBias    float64
}

// LoadModel reads and validates a model artifact
//
// Every failure comes back as *LoadError so callers can uniformly degrade.
func LoadModel(path string) (*FileModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("corrupt artifact: %w", err)}
	}

	if len(a.URLWeights) != detection.FeatureCount {
		return nil, &LoadError{
			Path: path,
			Err:  fmt.Errorf("url model expects %d weights, artifact has %d", detection.FeatureCount, len(a.URLWeights)),
		}
	}
	if len(a.TextWeights) != len(a.Vocabulary) {
		return nil, &LoadError{
			Path: path,
			Err:  fmt.Errorf("text model has %d weights for %d vocabulary terms", len(a.TextWeights), len(a.Vocabulary)),
		}
	}

	vocabulary := make(map[string]int, len(a.Vocabulary))
	for i, term := range a.Vocabulary {
		vocabulary[strings.ToLower(term)] = i
	}

	return &FileModel{
		urlWeights:  a.URLWeights,
		urlBias:     a.URLBias,
		vocabulary:  vocabulary,
		textWeights: a.TextWeights,
		textBias:    a.TextBias,
	}, nil
}

// ClassifyURL scores a URL feature vector. Label 1 means malicious.
func (m *FileModel) ClassifyURL(features []float64) (int, float64) {
	p := sigmoid(dot(m.urlWeights, features) + m.urlBias)
	return labelFor(p), p
}

// VectorizeText converts text into the model's bag-of-words vector
func (m *FileModel) VectorizeText(text string) []float64 {
	vector := make([]float64, len(m.textWeights))

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if idx, ok := m.vocabulary[token]; ok {
			vector[idx]++
		}
	}

	return vector
}

// ClassifyText scores a vectorized text. Label 1 means malicious.
func (m *FileModel) ClassifyText(features []float64) (int, float64) {
	p := sigmoid(dot(m.textWeights, features) + m.textBias)
	return labelFor(p), p
}

func dot(weights, features []float64) float64 {
	n := len(weights)
	if len(features) < n {
		n = len(features)
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += weights[i] * features[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func labelFor(p float64) int {
	if p >= 0.5 {
		return 1
	}
	return 0
}

package parser

// Classifier decides whether a line starts a new message and extracts the
// fields of lines that do. Formats are tried in order; the first match wins.
type Classifier struct {
	formats []*Format
}

// NewClassifier creates a classifier over the given formats.
// With no formats it uses DefaultFormats.
func NewClassifier(formats ...*Format) *Classifier {
	if len(formats) == 0 {
		formats = DefaultFormats()
	}
	return &Classifier{formats: formats}
}

var defaultClassifier = NewClassifier()

// IsMessageStart reports whether line begins a new message in any recognized format.
func IsMessageStart(line string) bool {
	return defaultClassifier.IsMessageStart(line)
}

// ExtractFields splits a message-start line using the recognized formats.
func ExtractFields(line string) (Fields, error) {
	return defaultClassifier.Extract(line)
}

// Formats returns the formats this classifier recognizes.
func (c *Classifier) Formats() []*Format {
	return c.formats
}

// Match returns the first format whose start pattern matches line, or nil.
func (c *Classifier) Match(line string) *Format {
	for _, f := range c.formats {
		if f.Pattern.MatchString(line) {
			return f
		}
	}
	return nil
}

// IsMessageStart reports whether line begins a new message.
func (c *Classifier) IsMessageStart(line string) bool {
	return c.Match(line) != nil
}

package topics

// Renderer formats topic content for terminal display
type Renderer interface {
	// Render takes raw content and the source file extension (".md", ".txt")
	// and returns the text to print
	Render(content string, format string) string
}

// PlainRenderer prints topic content verbatim
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

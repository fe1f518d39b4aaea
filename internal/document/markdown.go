package document

import "os"

type markdownWriter struct{}

func (markdownWriter) Write(_, markdown, path string) error {
	return os.WriteFile(path, []byte(markdown), 0644)
}

func (markdownWriter) Format() string {
	return "md"
}

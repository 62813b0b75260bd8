package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"nnx1/internal/catalog"
	"nnx1/internal/model"
)

// AnswerFile is the YAML input for evaluate and report:
//
//	tool: marketing
//	name: Acme Bakery
//	answers: [Yes, No, Yes, Yes, No, No, Yes, Yes, No, Yes]
type AnswerFile struct {
	Tool    string   `yaml:"tool"`
	Name    string   `yaml:"name"`
	Answers []string `yaml:"answers"`
}

// ReadAnswerFile decodes an answer file from r
func ReadAnswerFile(r io.Reader) (*AnswerFile, error) {
	var f AnswerFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return &f, nil
}

// LoadAnswerFile reads an answer file from disk
func LoadAnswerFile(path string) (*AnswerFile, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadAnswerFile(fh)
}

// ModelAnswers pairs each raw answer with its catalog question. Tools outside
// the catalog keep their answers but get positional question ids.
func (f *AnswerFile) ModelAnswers() ([]model.Answer, error) {
	tool, _ := model.ParseTool(f.Tool)
	def, _ := catalog.Tool(tool)

	out := make([]model.Answer, len(f.Answers))
	for i, raw := range f.Answers {
		v, err := model.ParseAnswerValue(raw)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
		out[i] = model.Answer{QuestionID: fmt.Sprintf("q%d", i+1), Answer: v}
		if def != nil && i < len(def.Questions) {
			out[i].QuestionID = def.Questions[i].ID
			out[i].QuestionText = def.Questions[i].Text
		}
	}
	return out, nil
}

package diagnostic_test

import (
	"nnx1/internal/catalog"
	"nnx1/internal/model"
)

// answersFor builds answers for a tool's bank from a pattern such as
// "YYNNYNNNYY". It panics on unknown tools.
func answersFor(tool model.ToolID, pattern string) []model.Answer {
	t, err := catalog.Tool(tool)
	if err != nil {
		panic(err)
	}
	out := make([]model.Answer, len(pattern))
	for i, c := range pattern {
		v := model.AnswerNo
		if c == 'Y' {
			v = model.AnswerYes
		}
		out[i] = model.Answer{
			QuestionID:   t.Questions[i].ID,
			QuestionText: t.Questions[i].Text,
			Answer:       v,
		}
	}
	return out
}

func freeText(texts ...string) []model.Answer {
	out := make([]model.Answer, len(texts))
	for i, text := range texts {
		out[i] = model.Answer{QuestionID: text, QuestionText: text, Answer: model.AnswerNo}
	}
	return out
}

// Package catalog holds the static question banks for every diagnostic tool
// and for the phase assessment.
package catalog

import (
	"errors"
	"fmt"

	"nnx1/internal/model"
)

// QuestionsPerTool is the fixed size of every tool's question bank.
const QuestionsPerTool = 10

var (
	ErrQuestionIndex = errors.New("question index out of range")
)

type bank struct {
	prefix string
	texts  [QuestionsPerTool]string
}

var banks = map[model.ToolID]bank{
	model.ToolDataHygiene: {
		prefix: "DH",
		texts: [QuestionsPerTool]string{
			"Do you keep all your important business information in one place?",
			"Are your files and documents organized so anyone on your team can find them quickly?",
			"Do your business tools talk to each other without you copying data by hand?",
			"Do you have a system for updating customer information across all your apps?",
			"Does your team use the same tools to share updates and track work?",
			"Are your reports free of mistakes most of the time?",
			"Can you easily understand what your numbers are telling you each month?",
			"Do you review your reports before making big decisions?",
			"Do you track where your leads come from?",
			"Do you follow up with every new customer within a week?",
		},
	},
	model.ToolMarketing: {
		prefix: "ME",
		texts: [QuestionsPerTool]string{
			"Do you know which of your ads bring in new business?",
			"Do you track how many people open and click your emails?",
			"Do you know how new people find you online?",
			"Do you regularly ask for feedback after a sale?",
			"Do you respond to online reviews within a few days?",
			"Do you know what people are saying about your business?",
			"Do you compare your prices with what competitors charge?",
			"Have you reviewed your pricing in the last 12 months?",
			"Is your brand message the same on every channel?",
			"Is it clear to new visitors what makes your business different?",
		},
	},
	model.ToolCashFlow: {
		prefix: "CF",
		texts: [QuestionsPerTool]string{
			"Do you know your profit for each of the last three months?",
			"Do you write down all your income as it comes in?",
			"Do you have enough money saved to cover three months of bills?",
			"Have you looked into funding options such as loans or grants?",
			"Do you spend time planning for the next 3 months of cash?",
			"Do you track every business purchase?",
			"Do you review your costs at least once a month?",
			"Do you set sales goals for each month?",
			"Do you have a target number of new customers each quarter?",
			"Do you track when customers pay you late?",
		},
	},
}

// Tool returns a copy of the tool definition and its question bank.
func Tool(id model.ToolID) (*model.Tool, error) {
	b, ok := banks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownTool, id)
	}
	tool := &model.Tool{
		ID:         id,
		Name:       id.DisplayName(),
		CodePrefix: b.prefix,
		Questions:  make([]model.Question, QuestionsPerTool),
	}
	for i, text := range b.texts {
		tool.Questions[i] = model.Question{
			ID:   fmt.Sprintf("%s-%d", id, i+1),
			Code: questionCode(b.prefix, i),
			Text: text,
		}
	}
	return tool, nil
}

// Tools returns every tool in display order.
func Tools() []*model.Tool {
	out := make([]*model.Tool, 0, len(banks))
	for _, id := range model.ToolIDs() {
		t, _ := Tool(id)
		out = append(out, t)
	}
	return out
}

// Question returns the question at a zero-based index of a tool's bank.
func Question(id model.ToolID, index int) (model.Question, error) {
	t, err := Tool(id)
	if err != nil {
		return model.Question{}, err
	}
	if index < 0 || index >= len(t.Questions) {
		return model.Question{}, fmt.Errorf("%w: %d for %s", ErrQuestionIndex, index, id)
	}
	return t.Questions[index], nil
}

// QuestionCode maps a tool and zero-based index to its static code, e.g. DH004.
func QuestionCode(id model.ToolID, index int) (string, error) {
	q, err := Question(id, index)
	if err != nil {
		return "", err
	}
	return q.Code, nil
}

// QuestionCodes lists every code of a tool in order.
func QuestionCodes(id model.ToolID) []string {
	b, ok := banks[id]
	if !ok {
		return nil
	}
	codes := make([]string, QuestionsPerTool)
	for i := range codes {
		codes[i] = questionCode(b.prefix, i)
	}
	return codes
}

func questionCode(prefix string, index int) string {
	return fmt.Sprintf("%s%03d", prefix, index+1)
}

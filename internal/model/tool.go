package model

import (
	"errors"
	"strings"
)

// ErrUnknownTool is returned when a tool id or name matches no known diagnostic.
var ErrUnknownTool = errors.New("unknown diagnostic tool")

// ToolID identifies a diagnostic module
type ToolID string

const (
	ToolDataHygiene ToolID = "data-hygiene"
	ToolMarketing   ToolID = "marketing"
	ToolCashFlow    ToolID = "cash-flow"
)

// Tool is a diagnostic module with a fixed, ordered question bank
type Tool struct {
	ID         ToolID     `json:"id" bson:"id"`
	Name       string     `json:"name" bson:"name"`             // Display name, e.g. "Marketing Effectiveness Diagnostic"
	CodePrefix string     `json:"codePrefix" bson:"codePrefix"` // DH, ME, CF
	Questions  []Question `json:"questions" bson:"questions"`
}

var toolNames = map[ToolID]string{
	ToolDataHygiene: "Data Hygiene & Business Clarity Diagnostic",
	ToolMarketing:   "Marketing Effectiveness Diagnostic",
	ToolCashFlow:    "Cash Flow & Financial Clarity Diagnostic",
}

// ToolIDs returns every known tool in display order.
func ToolIDs() []ToolID {
	return []ToolID{ToolDataHygiene, ToolMarketing, ToolCashFlow}
}

// Known reports whether id names a supported tool.
func (id ToolID) Known() bool {
	_, ok := toolNames[id]
	return ok
}

// DisplayName returns the human readable tool name, or the raw id if unknown.
func (id ToolID) DisplayName() string {
	if name, ok := toolNames[id]; ok {
		return name
	}
	return string(id)
}

// ParseTool accepts either a tool id or its exact display name.
func ParseTool(s string) (ToolID, error) {
	s = strings.TrimSpace(s)
	id := ToolID(strings.ToLower(s))
	if id.Known() {
		return id, nil
	}
	for id, name := range toolNames {
		if strings.EqualFold(name, s) {
			return id, nil
		}
	}
	return ToolID(s), ErrUnknownTool
}

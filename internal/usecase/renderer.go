package usecase

import (
	"strings"

	"github.com/kelechv1/edulead-crm/internal/entity"
)

// RenderContext carries the values the message placeholders resolve against.
// Agent may be nil; every agent token then renders to the empty string.
type RenderContext struct {
	Lead  *entity.Lead
	Agent *entity.Agent
}

// RenderTemplate substitutes the recognized placeholder tokens in text with
// values from ctx. Tokens are exact, case-sensitive literals; anything else
// (including unknown {{...}} tokens) passes through verbatim. Missing values
// substitute to "", never to a literal "null".
func RenderTemplate(text string, ctx RenderContext) string {
	if text == "" {
		return ""
	}

	var agentName, agentEmail, agentPhone string
	if ctx.Agent != nil {
		agentName = ctx.Agent.Name
		agentEmail = ctx.Agent.Email
		agentPhone = ctx.Agent.Phone
	}

	var leadName, leadEmail, leadPhone, leadSchool, leadAddress string
	if ctx.Lead != nil {
		leadName = ctx.Lead.Name
		leadEmail = ctx.Lead.Email
		leadPhone = ctx.Lead.Phone
		leadSchool = ctx.Lead.SchoolName
		leadAddress = ctx.Lead.Address
	}

	r := strings.NewReplacer(
		"{{agent.name}}", agentName,
		"{{agent.email}}", agentEmail,
		"{{agent.phone}}", agentPhone,
		"{{lead.schoolName}}", leadSchool,
		"{{lead.contactName}}", leadName,
		"{{lead.email}}", leadEmail,
		"{{lead.phone}}", leadPhone,
		"{{lead.address}}", leadAddress,
	)

	return r.Replace(text)
}

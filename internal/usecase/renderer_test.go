package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kelechv1/edulead-crm/internal/entity"
)

func TestRenderTemplateSubstitutesLeadTokens(t *testing.T) {
	ctx := RenderContext{
		Lead: &entity.Lead{
			Name:       "Jane Doe",
			Email:      "jane@school.ng",
			Phone:      "+2348012345678",
			SchoolName: "Sunrise Academy",
			Address:    "12 Marina Rd, Lagos",
		},
	}

	assert.Equal(t, "Jane Doe", RenderTemplate("{{lead.contactName}}", ctx))
	assert.Equal(t, "jane@school.ng", RenderTemplate("{{lead.email}}", ctx))
	assert.Equal(t, "+2348012345678", RenderTemplate("{{lead.phone}}", ctx))
	assert.Equal(t, "Sunrise Academy", RenderTemplate("{{lead.schoolName}}", ctx))
	assert.Equal(t, "12 Marina Rd, Lagos", RenderTemplate("{{lead.address}}", ctx))
}

func TestRenderTemplateSubstitutesAgentTokens(t *testing.T) {
	ctx := RenderContext{
		Lead:  &entity.Lead{},
		Agent: &entity.Agent{Name: "Bob", Email: "bob@edulead.com", Phone: "+2347000000000"},
	}

	got := RenderTemplate("Contact {{agent.name}} at {{agent.email}} or {{agent.phone}}", ctx)
	assert.Equal(t, "Contact Bob at bob@edulead.com or +2347000000000", got)
}

func TestRenderTemplateMissingAgentRendersEmpty(t *testing.T) {
	ctx := RenderContext{Lead: &entity.Lead{Name: "Jane"}}

	assert.Equal(t, "", RenderTemplate("{{agent.name}}", ctx))
	assert.Equal(t, "Hi Jane, regards ", RenderTemplate("Hi {{lead.contactName}}, regards {{agent.name}}", ctx))
}

func TestRenderTemplateUnknownTokensPassThrough(t *testing.T) {
	ctx := RenderContext{Lead: &entity.Lead{Name: "Jane"}}

	assert.Equal(t, "{{unknown.x}}", RenderTemplate("{{unknown.x}}", ctx))
	assert.Equal(t, "{{Lead.email}}", RenderTemplate("{{Lead.email}}", ctx)) // case-sensitive
}

func TestRenderTemplateReplacesEveryOccurrence(t *testing.T) {
	ctx := RenderContext{Lead: &entity.Lead{Name: "Jane"}}

	got := RenderTemplate("{{lead.contactName}} and {{lead.contactName}} again", ctx)
	assert.Equal(t, "Jane and Jane again", got)
}

func TestRenderTemplateEmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderTemplate("", RenderContext{}))
}

func TestRenderTemplateNoPlaceholdersIsIdentity(t *testing.T) {
	ctx := RenderContext{Lead: &entity.Lead{Name: "Jane"}}

	assert.Equal(t, "plain text, nothing to do", RenderTemplate("plain text, nothing to do", ctx))
}

func TestRenderTemplateIsDeterministic(t *testing.T) {
	ctx := RenderContext{
		Lead:  &entity.Lead{Name: "Jane", Email: "jane@x.com"},
		Agent: &entity.Agent{Name: "Bob"},
	}
	text := "Hi {{lead.contactName}}, from {{agent.name}} ({{lead.email}})"

	first := RenderTemplate(text, ctx)
	second := RenderTemplate(text, ctx)
	assert.Equal(t, first, second)
	assert.Equal(t, "Hi Jane, from Bob (jane@x.com)", first)
}

func TestRenderTemplateMissingFieldsNeverRenderNull(t *testing.T) {
	ctx := RenderContext{Lead: &entity.Lead{}}

	got := RenderTemplate("[{{lead.email}}][{{lead.phone}}][{{agent.name}}]", ctx)
	assert.Equal(t, "[][][]", got)
	assert.NotContains(t, got, "null")
	assert.NotContains(t, got, "undefined")
}

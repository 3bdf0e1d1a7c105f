package mcpserver

// JourneyFormatContract describes the journey document model that LLM
// consumers work with through the composing tools.
const JourneyFormatContract = `# Raido Journey Format Contract

A journey is a structured document describing a customer's path through
ordered stages of interaction.

## Shape

` + "```" + `json
{
  "id": "<uuid>",
  "name": "Onboarding Flow",              // REQUIRED - the only required field
  "description": "",
  "coverImage": "/covers/hero.png",        // optional, set via cover upload
  "personaIds": ["persona-1"],             // references to external personas
  "state": "draft",                        // draft | current | future
  "status": "draft",                       // draft | active | completed (always draft on create)
  "createdAt": "2025-01-15T10:00:00Z",     // ISO-8601, set at save time
  "updatedAt": "2025-01-15T10:00:00Z",
  "stages": [
    {
      "id": "<uuid>",
      "name": "Awareness",
      "order": 0,                          // derived from position at save time
      "touchpoints": [
        {
          "id": "<uuid>",
          "name": "Initial Contact",
          "description": "First interaction with the product",
          "emotion": "neutral",            // positive | neutral | negative
          "customerAction": "",
          "customerJob": "",
          "insights": {"needs": [], "painPoints": [], "opportunities": []},
          "metrics": {"satisfaction": 0, "effort": 0, "completion": 0}
        }
      ]
    }
  ]
}
` + "```" + `

## Rules

1. **Journey name is required.** Saving a draft with an empty name fails.
2. **state and status are independent fields.** Both vocabularies contain
   "draft" but neither is derived from the other.
3. **Stage order is positional.** New stages are appended and named
   "Stage N" from the count at creation; names are never renumbered.
4. **Touchpoint ids are stable.** Saving a touchpoint with an existing id
   replaces that entry in place; without an id a new one is appended.
5. **insights and metrics are always materialized.** Omitted shapes are
   defaulted to empty lists and zero scores at save time.
6. **Saving is create-once.** A saved draft becomes a new journey record;
   there is no in-place update of persisted journeys.

## Workflow

1. ` + "`create_draft`" + ` opens a session seeded with an "Awareness" stage.
2. ` + "`set_journey_details`" + ` fills in name, description, state, personas.
3. ` + "`add_stage`" + ` / ` + "`rename_stage`" + ` shape the canvas.
4. ` + "`save_touchpoint`" + ` adds or edits touchpoints within a stage.
5. ` + "`preview_journey`" + ` renders the current draft read-only.
6. ` + "`save_journey`" + ` finalizes and persists; retry on failure is safe.
`

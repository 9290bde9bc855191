package gesture

import "github.com/santhosh-tekuri/jsonschema/v5"

// messageSchemaJSON describes the single-key wire contract.
const messageSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "minProperties": 1,
  "maxProperties": 1,
  "additionalProperties": false,
  "properties": {
    "direction": {"enum": ["left", "right", "jump", "crouch"]},
    "restart": {"const": true},
    "start": {"const": true},
    "calorieDirection": {"enum": ["up", "down"]},
    "calorieDone": {"const": true},
    "goToCalorieSetup": {"const": true},
    "screenType": {"enum": ["mainMenu", "calorieSetup", "loading", "game", "gameOver"]},
    "currentCalorieValue": {"type": "integer"},
    "sessionFinalCalories": {"type": "number", "minimum": 0}
  }
}`

var messageSchema = jsonschema.MustCompileString("momorun://gesture/message.schema.json", messageSchemaJSON)

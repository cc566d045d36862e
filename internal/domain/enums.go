package domain

// FieldType is the login role assigned to a field by the classifier.
type FieldType string

const (
	FieldTypeUsername FieldType = "username"
	FieldTypePassword FieldType = "password"
	FieldTypeOther    FieldType = "other"
)

// InputClass is the class part of a platform input-type bitmask.
type InputClass int

// InputVariation is the variation part of a platform input-type bitmask.
type InputVariation int

// Android input-type constants. Only the text class and its password
// variations matter for classification.
const (
	InputClassNone     InputClass = 0x00
	InputClassText     InputClass = 0x01
	InputClassNumber   InputClass = 0x02
	InputClassPhone    InputClass = 0x03
	InputClassDateTime InputClass = 0x04

	InputVariationNormal          InputVariation = 0x00
	InputVariationEmailAddress    InputVariation = 0x20
	InputVariationPassword        InputVariation = 0x80
	InputVariationVisiblePassword InputVariation = 0x90
	InputVariationWebEmail        InputVariation = 0xd0
	InputVariationWebPassword     InputVariation = 0xe0

	inputMaskClass     = 0x0000000f
	inputMaskVariation = 0x00000ff0
)

// InputVariationNames maps configuration names to password-capable variations.
var InputVariationNames = map[string]InputVariation{
	"password":         InputVariationPassword,
	"web_password":     InputVariationWebPassword,
	"visible_password": InputVariationVisiblePassword,
}

// Autofill hint tags declared by apps (View.AUTOFILL_HINT_*).
const (
	HintUsername     = "username"
	HintEmailAddress = "emailAddress"
	HintPassword     = "password"
)

// SaveDataType names the credential parts a save declaration asks for.
type SaveDataType string

const (
	SaveDataUsername SaveDataType = "username"
	SaveDataPassword SaveDataType = "password"
)

package format

import "github.com/gopak/gopak-query/internal/pkg"

// fieldClass tells where the value of a template field comes from.
type fieldClass uint8

const (
	// variantNative fields are read from the result itself.
	variantNative fieldClass = iota
	// alwaysLocal fields are read from the installed package of the same
	// name, whatever variant produced the result.
	alwaysLocal
	// contextual fields come from the rendering context.
	contextual
)

var fieldClasses = map[byte]fieldClass{
	pkg.FieldLocalVersion: alwaysLocal,
	pkg.FieldFiles:        alwaysLocal,
	pkg.FieldInstallDate:  alwaysLocal,
	pkg.FieldReason:       alwaysLocal,
	pkg.FieldValidation:   alwaysLocal,
	pkg.FieldInstallSize:  alwaysLocal,
	pkg.FieldTarget:       contextual,
}

func classify(c byte) fieldClass { return fieldClasses[c] }

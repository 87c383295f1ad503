package expr

import (
	"path/filepath"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/macropower/termicon/pkg/icon"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Math(),
		ext.Strings(),

		cel.Function("pathBase",
			cel.Overload("path_base", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(path ref.Val) ref.Val {
					pathValue, ok := path.(types.String).Value().(string)
					if !ok {
						return types.NewErr("pathBase: invalid string value")
					}

					return types.String(filepath.Base(pathValue))
				}),
			),
		),

		cel.Function("pathExt",
			cel.Overload("path_ext", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(path ref.Val) ref.Val {
					pathValue, ok := path.(types.String).Value().(string)
					if !ok {
						return types.NewErr("pathExt: invalid string value")
					}

					return types.String(filepath.Ext(pathValue))
				}),
			),
		),

		cel.Function("scale",
			cel.Overload("scale_string", []*cel.Type{cel.StringType}, cel.IntType,
				cel.UnaryBinding(func(filename ref.Val) ref.Val {
					name, ok := filename.(types.String).Value().(string)
					if !ok {
						return types.NewErr("scale: invalid string value")
					}

					return types.Int(icon.Spec{Filename: name}.Scale())
				}),
			),
		),

		cel.Function("points",
			cel.Overload("points_string_int", []*cel.Type{cel.StringType, cel.IntType}, cel.DoubleType,
				cel.BinaryBinding(func(filename, size ref.Val) ref.Val {
					name, ok := filename.(types.String).Value().(string)
					if !ok {
						return types.NewErr("points: invalid string value")
					}

					px, ok := size.(types.Int).Value().(int64)
					if !ok {
						return types.NewErr("points: invalid size value")
					}

					return types.Double(icon.Spec{Filename: name, Size: int(px)}.Points())
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

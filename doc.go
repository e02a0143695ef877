// Package validkit adds input-hygiene rules to github.com/go-playground/validator/v10:
// special characters, script markers, file extensions and image types.
//
// # Tags
//
// [Register] binds these tags to an engine:
//
//   - nospecialchars[=chars] - only letters, digits and spaces, plus the listed chars
//   - noscript - no "<script" or "script>" in any case
//   - fileext=.pdf .tar.gz - file name must end in one of the extensions
//   - imageext[=png jpg] - file name must have an image extension
//   - imagecontenttype[=image/png] - media type must be an image type
//   - imagecontent[=image/png] - []byte content must sniff as an image type
//
// nospecialchars and noscript scan nested values: strings, string and rune
// slices, structs, pointers, slices and maps. Fields can opt out with the
// `sanitize` struct tag, see package [github.com/gobeaver/validkit/sanitize].
// Values nested deeper than the configured depth ([WithMaxDepth]) fail.
//
// # Basic Usage
//
//	type Comment struct {
//	    Author string `validate:"required,nospecialchars=-_."`
//	    Body   string `validate:"noscript"`
//	    Raw    string `validate:"noscript" sanitize:"skipscript"`
//	    Upload string `validate:"fileext=.jpg .png"`
//	}
//
//	v, err := validkit.New(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := v.Struct(comment); err != nil {
//	    for _, fe := range err.(validkit.ValidationErrors) {
//	        fmt.Println(fe.Namespace, fe.Message)
//	    }
//	}
//
// An existing engine keeps its own settings:
//
//	engine := validator.New()
//	err := validkit.Register(engine, validkit.WithAllowedChars("-_"))
//
// # Whole-object Rules
//
// Every string reachable from a struct can be checked without tagging fields:
//
//	v.RequireNoScripts(Comment{})
//	v.RequireNoSpecialChars("-_.", Profile{})
//
// The reported field is the path of the first offending value, e.g.
// "Address.Street" or "Tags[2]".
//
// # Configuration
//
// Defaults can be read from environment variables with the BEAVER_VALIDKIT_
// prefix, or set with the [Builder]:
//
//	v, err := validkit.NewBuilder().
//	    AllowedChars("-_").
//	    MaxDepth(8).
//	    Logger(logger).
//	    Build()
package validkit

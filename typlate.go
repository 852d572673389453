// Package typlate provides type-checked string templates.
//
// A template is ordinary text with {field} placeholders. It is parsed once,
// every placeholder is checked against the fields of a Go type, and the result
// formats values of that type:
//
//	type Person struct {
//	    Name string `typlate:"name"`
//	    Age  int    `typlate:"age"`
//	}
//
//	tmpl, err := typlate.Parse[Person]("Hello {name}, you are {age} years old!")
//	// handle err
//	tmpl.Format(Person{Name: "Alice", Age: 30})
//	// "Hello Alice, you are 30 years old!"
//
// # Syntax
//
// "{name}" references a field. Everything between the braces is the field name,
// taken verbatim. "{{" and "}}" produce literal braces. Any other "}" is an error,
// as is a "{" that is never closed.
//
// # Schemas
//
// The fields a template may use come from a Schema. FieldsOf derives one from
// a struct (exported fields, optional `typlate:"name"` tags) or from a type that
// implements Params. NewSchema builds one from an explicit table, and MapSchema
// covers map[string]any data.
//
// # Errors
//
// Parse fails with an unmatched-brace error or an unknown-field error. All errors
// are *cuserr.CustomError values carrying line, column and offset metadata; use
// IsUnmatchedOpenBrace, IsUnmatchedCloseBrace, IsUnknownField and ErrorPosition
// to inspect them. Once parsed, formatting cannot fail.
//
// # Serialization
//
// Template implements JSON, YAML and text (un)marshaling as its template text,
// so it can be a field of a configuration document and is validated on decode.
//
// # Catalogs and stores
//
// A Catalog holds named templates of one schema, loaded from YAML, JSON or a
// Store. Stores keep raw template text in memory, in a directory, or in a
// PostgreSQL or SQLite table (see OpenStore). A catalog can watch a
// FilesystemStore and reload itself when files change.
//
// Compilers and catalogs log through zap (WithLogger) and can count parse
// outcomes in a Prometheus registry (WithMetrics).
package typlate

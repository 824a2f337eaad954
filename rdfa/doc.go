// Package rdfa generates the literal values of RDFa property attributes.
//
// GenerateLiteral decides between the content attribute, an explicit
// datatype, an XML literal built from the element's markup and the element's
// text. XML literals are serialized with the namespace and language
// declarations inherited from the enclosing Scope.
package rdfa

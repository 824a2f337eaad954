package rdf

// Namespace IRIs used by the extractors.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
	XMLNamespace  = "http://www.w3.org/XML/1998/namespace"
)

var (
	RDFType       = IRI{Value: RDFNamespace + "type"}
	RDFXMLLiteral = IRI{Value: RDFNamespace + "XMLLiteral"}

	XSDString     = IRI{Value: XSDNamespace + "string"}
	XSDInteger    = IRI{Value: XSDNamespace + "integer"}
	XSDDouble     = IRI{Value: XSDNamespace + "double"}
	XSDDate       = IRI{Value: XSDNamespace + "date"}
	XSDTime       = IRI{Value: XSDNamespace + "time"}
	XSDDateTime   = IRI{Value: XSDNamespace + "dateTime"}
	XSDGYear      = IRI{Value: XSDNamespace + "gYear"}
	XSDGYearMonth = IRI{Value: XSDNamespace + "gYearMonth"}
	XSDGMonthDay  = IRI{Value: XSDNamespace + "gMonthDay"}
	XSDDuration   = IRI{Value: XSDNamespace + "duration"}
)

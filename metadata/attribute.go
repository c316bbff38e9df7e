package metadata

// AssemblyToken is the metadata token of the assembly definition row.
const AssemblyToken uint32 = 0x20000001

type CustomAttributeTypedArgument struct {
	Type  string
	Value any
}

type CustomAttributeData struct {
	AttributeType string
	Arguments     []CustomAttributeTypedArgument
	Synthesized   bool
}

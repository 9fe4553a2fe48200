package usecase

// CreateSecretInput is the builder for SecretController.Create
// (spec.md §4.5's "build(name, plaintext, creator).withX(...).create()").
// Exhaustive options: WithDescription, WithVersion, WithAutoVersion,
// WithMetadata, WithType, WithGenerationOptions.
type CreateSecretInput struct {
	Name       string
	Plaintext  []byte
	Creator    string
	Descr      string
	Ver        string
	autoVer    bool
	Meta       map[string]string
	Typ        string
	GenOptions map[string]string
}

// NewCreateSecretInput starts a builder for the three required fields.
func NewCreateSecretInput(name string, plaintext []byte, creator string) *CreateSecretInput {
	return &CreateSecretInput{Name: name, Plaintext: plaintext, Creator: creator}
}

// WithDescription sets the series description.
func (i *CreateSecretInput) WithDescription(description string) *CreateSecretInput {
	i.Descr = description
	return i
}

// WithVersion sets an explicit version string for the content revision.
// Mutually exclusive in effect with WithAutoVersion: a later call to either
// wins.
func (i *CreateSecretInput) WithVersion(version string) *CreateSecretInput {
	i.Ver = version
	i.autoVer = false
	return i
}

// WithAutoVersion requests a C2 VersionStamp-generated version instead of an
// explicit one or the empty/unversioned revision.
func (i *CreateSecretInput) WithAutoVersion() *CreateSecretInput {
	i.autoVer = true
	i.Ver = ""
	return i
}

// WithMetadata sets the series' flat string metadata map.
func (i *CreateSecretInput) WithMetadata(metadata map[string]string) *CreateSecretInput {
	i.Meta = metadata
	return i
}

// WithType sets the series' type tag.
func (i *CreateSecretInput) WithType(typ string) *CreateSecretInput {
	i.Typ = typ
	return i
}

// WithGenerationOptions sets the opaque generation-options map carried on
// the series (meaningful only to whatever external generator produced the
// plaintext; C3 never interprets it).
func (i *CreateSecretInput) WithGenerationOptions(options map[string]string) *CreateSecretInput {
	i.GenOptions = options
	return i
}

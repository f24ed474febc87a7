package commandstructure

// fakeStep stands in for a photo step; run decides what it does with the bytes
type fakeStep struct {
	name string
	run  func(photo []byte) ([]byte, error)
}

func (f *fakeStep) Name() string { return f.name }

func (f *fakeStep) Execute(photo []byte) ([]byte, error) {
	if f.run == nil {
		return photo, nil
	}
	return f.run(photo)
}

func passThroughStep(name string) *fakeStep {
	return &fakeStep{name: name}
}

func failingStep(name string, err error) *fakeStep {
	return &fakeStep{name: name, run: func([]byte) ([]byte, error) { return nil, err }}
}

// taggingStep appends "-tag" so tests can read the order steps ran in
func taggingStep(name, tag string) *fakeStep {
	return &fakeStep{name: name, run: func(photo []byte) ([]byte, error) {
		return append(photo, "-"+tag...), nil
	}}
}

package cipher

import (
	"enigmasim/internal/domain"
	"enigmasim/internal/protocol/enigma"
)

// SelfTestResult is the outcome of one self-test case.
type SelfTestResult struct {
	Name   string
	Mode   domain.CodecMode
	Input  string
	Output string
	Replay string
	Passed bool
}

type selfTestCase struct {
	name  string
	mode  domain.CodecMode
	input string
	// want, when set, is the exact expected output.
	want string
}

var selfTestCases = []selfTestCase{
	{name: "known vector", mode: domain.CodecRaw, input: "AAAAA", want: "BDZGO"},
	{name: "raw round trip", mode: domain.CodecRaw, input: "HELLO WORLD"},
	{name: "codec round trip", mode: domain.CodecAuto, input: "Hello World!"},
}

// SelfTest runs fixed round trips on the built-in default machine (rotors
// I, II, III at AAA, reflector B, no plugboard cables). The store is not
// consulted, so a broken catalog cannot mask a broken machine.
func (s *Service) SelfTest() ([]SelfTestResult, error) {
	def := domain.DefaultCatalog()
	m, err := enigma.New(def.Rotors[:3], def.Reflectors[0], def.Plugboards[0], enigma.WithLogger(s.log))
	if err != nil {
		return nil, err
	}

	out := make([]SelfTestResult, 0, len(selfTestCases))
	for _, tc := range selfTestCases {
		output, replay := s.RoundTrip(m, tc.input, tc.mode)
		passed := replay == tc.input && output != tc.input
		if tc.want != "" {
			passed = passed && output == tc.want
		}
		out = append(out, SelfTestResult{
			Name:   tc.name,
			Mode:   tc.mode,
			Input:  tc.input,
			Output: output,
			Replay: replay,
			Passed: passed,
		})
	}
	return out, nil
}

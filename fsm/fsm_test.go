package fsm

import "fmt"

type tracer struct {
	log []string
}

func (p *tracer) record(format string, args ...any) {
	p.log = append(p.log, fmt.Sprintf(format, args...))
}

type recordingState struct {
	name   string
	enters int
	execs  int
	exits  int
}

func (s *recordingState) Enter(p *tracer) {
	s.enters++
	p.record("%s.enter", s.name)
}

func (s *recordingState) Execute(p *tracer) {
	s.execs++
	p.record("%s.execute", s.name)
}

func (s *recordingState) Exit(p *tracer) {
	s.exits++
	p.record("%s.exit", s.name)
}

func equalLog(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

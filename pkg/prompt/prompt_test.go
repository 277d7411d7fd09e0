package prompt

import (
	"context"
	"testing"
)

func TestParseBool(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    bool
		wantErr bool
	}{
		"yes":   {in: "yes", want: true},
		"Y":     {in: "Y", want: true},
		"true":  {in: "true", want: true},
		"no":    {in: "no"},
		"N":     {in: "N"},
		"0":     {in: "0"},
		"maybe": {in: "maybe", wantErr: true},
		"empty": {in: "", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBool(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseBool(%q) err = %v, wantErr %t", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("ParseBool(%q) = %t, want %t", tc.in, got, tc.want)
			}
		})
	}
}

func TestConfirmCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Prompter{}
	ok, err := p.Confirm(ctx, "discard?")
	if err == nil || ok {
		t.Fatalf("Confirm on canceled context = %t, %v", ok, err)
	}
}

func TestTaskEmpty(t *testing.T) {
	p := &Prompter{}
	if _, err := p.Task("pick", nil); err == nil {
		t.Fatalf("expected error choosing from no tasks")
	}
}

package cambium_test

import (
	"context"
	"fmt"

	cambium "github.com/aretw0/cambium"
	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/dsl"
)

type trafficSignal struct {
	state *domain.State
}

func (s *trafficSignal) State() *domain.State      { return s.state }
func (s *trafficSignal) SetState(st *domain.State) { s.state = st }

func ExampleNew() {
	b := dsl.New("TrafficLight")
	b.State("Green").Transition("slow_down", nil, "Yellow")
	b.State("Yellow").Transition("stop", nil, "Red")
	b.State("Red").Transition("go", nil, "Green")

	m, err := cambium.New(b)
	if err != nil {
		fmt.Println(err)
		return
	}

	green, _ := m.State("Green")
	signal := &trafficSignal{state: green}

	ctx := context.Background()
	h, _ := m.Bind(ctx, "Green", signal)
	if _, err := h.Do(ctx, "slow_down"); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(signal.state)
	// Output: Yellow
}

func ExampleMachine_Bind_multipleOutputs() {
	b := dsl.New("Review")
	b.State("Pending").Transition("decide", func(ctx context.Context, call *domain.TransitionCall) (any, error) {
		m := call.From.Machine()
		if approved, _ := call.Args[0].(bool); approved {
			s, _ := m.State("Approved")
			return s, nil
		}
		s, _ := m.State("Rejected")
		return s, nil
	}, "Approved", "Rejected")
	b.State("Approved")
	b.State("Rejected")

	m, err := cambium.New(b)
	if err != nil {
		fmt.Println(err)
		return
	}

	pending, _ := m.State("Pending")
	doc := &trafficSignal{state: pending}

	ctx := context.Background()
	h, _ := m.Bind(ctx, "Pending", doc)
	if _, err := h.Do(ctx, "decide", true); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(doc.state)
	// Output: Approved
}

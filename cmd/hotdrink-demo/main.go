package main

import (
	"context"
	"fmt"

	examplecomponents "github.com/hotdrink-go/hotdrink/solver/examples/components"
	"github.com/hotdrink-go/hotdrink/solver/executor/inmem"
	"github.com/hotdrink-go/hotdrink/solver/schedule"
	"github.com/hotdrink-go/hotdrink/solver/system"
)

func main() {
	ctx := context.Background()

	// 1) Executor (fixed worker pool; see solver/executor/pulsepool for a
	// Pulse-backed alternative with the same interface).
	exec := inmem.New(4, 32)
	defer exec.Close(ctx)

	// 2) System wraps one or more named components.
	sys := system.New(exec, system.Options{})
	triangle := sys.AddComponent(examplecomponents.Sum())

	if err := triangle.Subscribe("c", func(e schedule.Event) {
		if e.Kind() == schedule.KindReady {
			fmt.Println("c settled at", e.Payload())
		}
	}); err != nil {
		panic(err)
	}

	// 3) Edit two of the three variables and solve for the third.
	if err := sys.SetVariable("sum", "a", 3); err != nil {
		panic(err)
	}
	if err := sys.SetVariable("sum", "b", 4); err != nil {
		panic(err)
	}
	if err := sys.Update(ctx); err != nil {
		panic(err)
	}

	c, err := triangle.Await(ctx, "c")
	if err != nil {
		panic(err)
	}
	fmt.Println("a + b = c ->", c)

	// 4) Pin a to stop future solves from touching it, even if b changes.
	if err := sys.Pin("sum", "a"); err != nil {
		panic(err)
	}
	if err := sys.SetVariable("sum", "b", 10); err != nil {
		panic(err)
	}
	if err := sys.Update(ctx); err != nil {
		panic(err)
	}
	c, err = triangle.Await(ctx, "c")
	if err != nil {
		panic(err)
	}
	fmt.Println("after pinning a, b=10 -> c =", c)

	// 5) Undo the last edit.
	if err := sys.Undo("sum"); err != nil {
		panic(err)
	}
	b, err := triangle.GetVariable("b")
	if err != nil {
		panic(err)
	}
	fmt.Println("after undo, b =", b)
}

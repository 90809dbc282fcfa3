// Package fleet is a fixture imported by the loader tests.
package fleet

type Vehicle interface {
	Wheels() int
}

type Named interface {
	Name() string
}

type Car struct {
	Brand string
}

func (c Car) Wheels() int { return 4 }

func (c *Car) Name() string { return c.Brand }

type Truck struct {
	Car
	Load int
}

type Garage []Car

type Registry map[string]*Car

type Fuel int

const (
	Petrol Fuel = iota
	Diesel
)

type Speed float64

type Box[T Named] struct {
	Item T
}

package runtime

// ObjectKind selects which role an object plays.
type ObjectKind int

const (
	KindPlain ObjectKind = iota
	KindEnvironment
	KindFunction
)

func (k ObjectKind) String() string {
	switch k {
	case KindPlain:
		return "object"
	case KindEnvironment:
		return "environment"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Invoker is the behaviour of a callable object. self is the function
// object being invoked, receiver is the value bound to this.
type Invoker func(self *Object, receiver *Value, args []*Value) (*Value, error)

// Object is the single runtime entity behind environments, plain objects
// and functions.
type Object struct {
	Kind ObjectKind
	Name string

	// Parent is only set on environments. It is used for name resolution
	// and never owns the parent: the Go collector keeps a frame alive for
	// as long as a call or a closure still references it.
	Parent *Object

	Invoker Invoker

	fields map[string]*Value
	order  []string
}

func newObject(kind ObjectKind) *Object {
	return &Object{
		Kind:   kind,
		fields: make(map[string]*Value),
	}
}

// NewPlainObject creates an object with fields only.
func NewPlainObject() *Object {
	return newObject(KindPlain)
}

// NewFunction creates a callable object.
func NewFunction(name string, invoker Invoker) *Object {
	fn := newObject(KindFunction)
	fn.Name = name
	fn.Invoker = invoker
	return fn
}

// Get reads an own field. A missing field reads as Undefined.
func (o *Object) Get(name string) *Value {
	if v, ok := o.fields[name]; ok {
		return v
	}
	return Undefined
}

// Set installs or overwrites an own field.
func (o *Object) Set(name string, val *Value) {
	if val == nil {
		val = Undefined
	}
	if _, ok := o.fields[name]; !ok {
		o.order = append(o.order, name)
	}
	o.fields[name] = val
}

// Fields returns own field names in insertion order.
func (o *Object) Fields() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

func (o *Object) Callable() bool {
	return o != nil && o.Invoker != nil
}

// Invoke calls the object with the given receiver and arguments.
func (o *Object) Invoke(receiver *Value, args []*Value) (*Value, error) {
	if !o.Callable() {
		return nil, TypeErrorf("%s is not a function", o.String())
	}
	if receiver == nil {
		receiver = Undefined
	}
	result, err := o.Invoker(o, receiver, args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return Undefined, nil
	}
	return result, nil
}

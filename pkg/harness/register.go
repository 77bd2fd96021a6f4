package harness

import (
	"fmt"
	"reflect"

	"batchtest/internal/discovery"
	"batchtest/internal/domain"
	"batchtest/internal/logging"
	"batchtest/pkg/testkit"
)

// RegisterTests clears the registry and fills it from every scanned test
// type. Any error aborts registration as a whole.
func (h *Harness) RegisterTests() error {
	h.registry.Reset()
	h.ignored = 0
	for _, t := range h.scanner.Scan(h.provider) {
		if err := h.registerType(t); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) registerType(t *testkit.Type) error {
	inst, err := instantiate(t)
	if err != nil {
		return &domain.RegistrationError{Type: t.Name, Err: err}
	}

	// Setups and teardowns are bound once and shared by every test of the instance.
	setUps, err := bindSteps(t, inst, testkit.KindSetUp)
	if err != nil {
		return err
	}
	tearDowns, err := bindSteps(t, inst, testkit.KindTearDown)
	if err != nil {
		return err
	}

	for _, name := range t.Methods() {
		tags := t.MethodTags(name)
		if !hasKind(tags, testkit.KindTest, testkit.KindTestCase, testkit.KindTestCaseSource) {
			if hasKind(tags, testkit.KindPlaymodeTest) {
				h.ignored++
				h.logger.Log(fmt.Sprintf("Skipping %s.%s: playmode tests are not supported.", t.Name, name), logging.Warning)
			}
			continue
		}

		m, err := discovery.Describe(t, name)
		if err != nil {
			return &domain.RegistrationError{Type: t.Name, Method: name, Err: err}
		}
		cases, err := h.expander.Expand(t, m)
		if err != nil {
			return &domain.RegistrationError{Type: t.Name, Method: name, Err: err}
		}
		for _, c := range cases {
			h.registry.Add(domain.TestRecord{
				Group:       t.Name,
				DisplayName: c.Name,
				Invoke:      c.Bind(inst),
				SetUps:      setUps,
				TearDowns:   tearDowns,
			})
		}
	}
	return nil
}

// instantiate creates the single instance shared by a type's tests.
func instantiate(t *testkit.Type) (inst reflect.Value, err error) {
	ctor, ok := t.Constructor()
	if !ok {
		return reflect.New(t.Reflect.Elem()), nil
	}

	fn := reflect.ValueOf(ctor)
	ft := fn.Type()
	if ft.Kind() != reflect.Func || ft.NumIn() != 0 || ft.NumOut() == 0 || ft.NumOut() > 2 ||
		ft.Out(0) != t.Reflect || (ft.NumOut() == 2 && !ft.Out(1).Implements(reflect.TypeOf((*error)(nil)).Elem())) {
		return reflect.Value{}, fmt.Errorf("constructor must be func() %s or func() (%s, error), got %s", t.Reflect, t.Reflect, ft)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor panicked: %v", r)
		}
	}()
	out := fn.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("constructor failed: %w", out[1].Interface().(error))
	}
	if out[0].IsNil() {
		return reflect.Value{}, fmt.Errorf("constructor returned nil")
	}
	return out[0], nil
}

// bindSteps binds the methods tagged with kind to inst, in declaration order.
func bindSteps(t *testkit.Type, inst reflect.Value, kind testkit.Kind) ([]domain.Callable, error) {
	var steps []domain.Callable
	for _, name := range t.MethodsWith(kind) {
		m, err := discovery.Describe(t, name)
		if err == nil && (len(m.Params) > 0 || !m.ReturnsNothing() || m.Generic != nil) {
			err = &domain.UnsupportedMethodSignatureError{Method: name, Reason: fmt.Sprintf("%s methods take no arguments and return nothing or an error", kind)}
		}
		if err != nil {
			return nil, &domain.RegistrationError{Type: t.Name, Method: name, Err: err}
		}
		fn := m.Func
		steps = append(steps, func() error {
			return discovery.Call(fn, inst, nil)
		})
	}
	return steps, nil
}

func hasKind(tags []testkit.Tag, kinds ...testkit.Kind) bool {
	for _, tag := range tags {
		for _, k := range kinds {
			if tag.Kind == k {
				return true
			}
		}
	}
	return false
}

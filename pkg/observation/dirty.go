package observation

import (
	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// DirtyCheckSettings configures a DirtyChecker.
type DirtyCheckSettings struct {
	// TimeoutsPerCheck is the number of platform frames between two checks.
	TimeoutsPerCheck int
	// Disabled suspends checking.
	Disabled bool
	// Throw makes the creation of dirty-checked observers fail, to find
	// properties that fall back to dirty checking.
	Throw bool
}

// DefaultDirtyCheckSettings returns the default settings.
func DefaultDirtyCheckSettings() DirtyCheckSettings {
	return DirtyCheckSettings{TimeoutsPerCheck: 25}
}

// DirtyChecker polls the properties that cannot be observed otherwise. While
// at least one property is tracked, a persistent platform task checks all of
// them every TimeoutsPerCheck frames, and queues the changed ones for
// notification.
type DirtyChecker struct {
	Settings      DirtyCheckSettings
	platform      platform.TaskQueue
	queue         *FlushQueue
	tracked       []*DirtyCheckProperty
	task          *platform.Task
	elapsedFrames int
}

// NewDirtyChecker creates a DirtyChecker.
func NewDirtyChecker(settings DirtyCheckSettings, p platform.TaskQueue, queue *FlushQueue) *DirtyChecker {
	return &DirtyChecker{Settings: settings, platform: p, queue: queue}
}

// CreateProperty creates a dirty-checked observer.
func (d *DirtyChecker) CreateProperty(obj any, key string) (*DirtyCheckProperty, error) {
	if d.Settings.Throw {
		return nil, ErrDirtyCheck
	}
	logger.Printf("dirty checking %s of %s", key, vals.Kind(obj))
	return &DirtyCheckProperty{checker: d, obj: obj, key: key}, nil
}

// Tracked returns the number of tracked properties.
func (d *DirtyChecker) Tracked() int { return len(d.tracked) }

func (d *DirtyChecker) addProperty(p *DirtyCheckProperty) {
	d.tracked = append(d.tracked, p)
	if len(d.tracked) == 1 && d.platform != nil {
		d.task = d.platform.QueueTask(d.check, platform.TaskOptions{Persistent: true})
	}
}

func (d *DirtyChecker) removeProperty(p *DirtyCheckProperty) {
	for i, q := range d.tracked {
		if q == p {
			d.tracked = append(d.tracked[:i], d.tracked[i+1:]...)
			break
		}
	}
	if len(d.tracked) == 0 && d.task != nil {
		d.task.Cancel()
		d.task = nil
	}
}

func (d *DirtyChecker) check() {
	if d.Settings.Disabled {
		return
	}
	d.elapsedFrames++
	if d.elapsedFrames < d.Settings.TimeoutsPerCheck {
		return
	}
	d.elapsedFrames = 0
	d.Check()
}

// Check checks all tracked properties immediately.
func (d *DirtyChecker) Check() {
	for _, p := range append([]*DirtyCheckProperty(nil), d.tracked...) {
		if p.IsDirty() {
			d.queue.Add(p)
		}
	}
}

// DirtyCheckProperty is an observer that detects changes by comparing the
// current value of a property with the last seen one.
type DirtyCheckProperty struct {
	Subscribers
	checker  *DirtyChecker
	obj      any
	key      string
	oldValue any
}

// Type returns TypeObserver.
func (p *DirtyCheckProperty) Type() AccessorType { return TypeObserver }

// GetValue reads the property.
func (p *DirtyCheckProperty) GetValue() any { return vals.GetProperty(p.obj, p.key) }

// SetValue writes the property.
func (p *DirtyCheckProperty) SetValue(v any, _ Flags) error {
	return vals.SetProperty(p.obj, p.key, v)
}

// IsDirty returns whether the property changed since the last notification.
func (p *DirtyCheckProperty) IsDirty() bool {
	return !vals.SameValue(p.oldValue, p.GetValue())
}

// Flush notifies subscribers of the change.
func (p *DirtyCheckProperty) Flush() {
	oldValue := p.oldValue
	newValue := p.GetValue()
	p.oldValue = newValue
	if vals.SameValue(oldValue, newValue) {
		return
	}
	p.Notify(newValue, oldValue, FlagDirtyCheck)
}

// Subscribe adds a subscriber. The first one starts tracking.
func (p *DirtyCheckProperty) Subscribe(s Subscriber) {
	if p.Add(s) && p.Len() == 1 {
		p.oldValue = p.GetValue()
		p.checker.addProperty(p)
	}
}

// Unsubscribe removes a subscriber. The last one stops tracking.
func (p *DirtyCheckProperty) Unsubscribe(s Subscriber) {
	if p.Remove(s) && p.Len() == 0 {
		p.checker.removeProperty(p)
	}
}

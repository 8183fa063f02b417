package spec

import "github.com/pkg/errors"

// DocumentTaskQueue batches mutation requests against a document and
// applies them on Flush. Node-creating tasks return the id their node
// will get, predicted from the arena's next id plus the tasks already
// queued, so callers can reference not-yet-created nodes. Attribute
// inserts always succeed at queue time; validation happens at flush.
type DocumentTaskQueue struct {
	handle DocumentHandle
	tasks  []documentTask

	// node-creating tasks queued since the last flush, for id prediction
	pendingNodes uint64
}

type documentTask interface {
	apply(doc *Document) error
}

type createElementTask struct {
	name      string
	namespace string
	parentID  NodeID
	position  int
}

type createTextTask struct {
	value    string
	parentID NodeID
}

type createCommentTask struct {
	value    string
	parentID NodeID
}

type insertAttributeTask struct {
	name   string
	value  string
	nodeID NodeID
}

// Create tasks register their node before checking the parent so that
// the ids predicted for tasks queued behind them stay valid. A create
// against a missing parent reports the failure and leaves the node
// registered but unattached.
func (t *createElementTask) apply(doc *Document) error {
	nodeID := doc.RegisterNode(NewElementNode(t.name, t.namespace, nil))
	if doc.NodeByID(t.parentID) == nil {
		return errors.Errorf("Node ID %d not found", t.parentID)
	}
	doc.AttachNode(nodeID, t.parentID, t.position)
	return nil
}

func (t *createTextTask) apply(doc *Document) error {
	nodeID := doc.RegisterNode(NewTextNode(t.value))
	if doc.NodeByID(t.parentID) == nil {
		return errors.Errorf("Node ID %d not found", t.parentID)
	}
	doc.AttachNode(nodeID, t.parentID, AppendPosition)
	return nil
}

func (t *createCommentTask) apply(doc *Document) error {
	nodeID := doc.RegisterNode(NewCommentNode(t.value))
	if doc.NodeByID(t.parentID) == nil {
		return errors.Errorf("Node ID %d not found", t.parentID)
	}
	doc.AttachNode(nodeID, t.parentID, AppendPosition)
	return nil
}

func (t *insertAttributeTask) apply(doc *Document) error {
	return doc.SetAttribute(t.nodeID, t.name, t.value)
}

func NewDocumentTaskQueue(handle DocumentHandle) *DocumentTaskQueue {
	return &DocumentTaskQueue{handle: handle}
}

func (q *DocumentTaskQueue) IsEmpty() bool {
	return len(q.tasks) == 0
}

// predictNextID reserves the id the queued node will be registered
// under, assuming the queue flushes before any other registration.
func (q *DocumentTaskQueue) predictNextID() NodeID {
	id := q.handle.Doc().PeekNextID() + NodeID(q.pendingNodes)
	q.pendingNodes++
	return id
}

// CreateElement queues an element creation under the parent and returns
// the id the element will get once flushed.
func (q *DocumentTaskQueue) CreateElement(name string, parentID NodeID, position int, namespace string) NodeID {
	nodeID := q.predictNextID()
	q.tasks = append(q.tasks, &createElementTask{
		name:      name,
		namespace: namespace,
		parentID:  parentID,
		position:  position,
	})
	return nodeID
}

// CreateText queues a text node creation appended under the parent.
func (q *DocumentTaskQueue) CreateText(value string, parentID NodeID) {
	q.predictNextID()
	q.tasks = append(q.tasks, &createTextTask{value: value, parentID: parentID})
}

// CreateComment queues a comment node creation appended under the parent.
func (q *DocumentTaskQueue) CreateComment(value string, parentID NodeID) {
	q.predictNextID()
	q.tasks = append(q.tasks, &createCommentTask{value: value, parentID: parentID})
}

// InsertAttribute queues an attribute insert on the target node. The
// target may be an id predicted by an earlier CreateElement.
func (q *DocumentTaskQueue) InsertAttribute(name, value string, nodeID NodeID) {
	q.tasks = append(q.tasks, &insertAttributeTask{name: name, value: value, nodeID: nodeID})
}

// Flush applies the queued tasks in order. The batch partially succeeds:
// valid tasks take effect, invalid ones are skipped and reported, one
// error per failed task. The queue is empty afterwards.
func (q *DocumentTaskQueue) Flush() []error {
	var errs []error
	doc := q.handle.Doc()
	for _, task := range q.tasks {
		if err := task.apply(doc); err != nil {
			errs = append(errs, errors.Errorf("document task error: %s", err))
		}
	}
	q.tasks = nil
	q.pendingNodes = 0
	return errs
}

package component

// Attachment ties an entity's lifetime to a parent entity: destroying the
// parent recursively destroys it.
type Attachment struct {
	Parent uint64 // ecs.Entity
}

var AttachmentComponent = NewComponent[Attachment]()

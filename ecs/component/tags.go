package component

type CharacterTag struct{}

var CharacterTagComponent = NewComponent[CharacterTag]()

// MainCameraTag marks the camera whose facing drives camera-relative movement.
type MainCameraTag struct{}

var MainCameraTagComponent = NewComponent[MainCameraTag]()

type DebrisTag struct{}

var DebrisTagComponent = NewComponent[DebrisTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

package dto

// PubSubPushRequest は Pub/Sub push サブスクリプションからのリクエストです。
// GCSのオブジェクト通知はこの封筒に入って届きます
type PubSubPushRequest struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PubSubMessage は Pub/Sub メッセージ本体です。
// GCS通知ではバケット名・オブジェクトキー・イベント種別が属性に入ります
type PubSubMessage struct {
	MessageID  string            `json:"messageId"`
	Data       string            `json:"data,omitempty"` // base64エンコードされたJSON
	Attributes map[string]string `json:"attributes"`
}

// GCS通知の属性キーとイベント種別
const (
	AttrBucketID  = "bucketId"
	AttrObjectID  = "objectId"
	AttrEventType = "eventType"

	EventTypeObjectFinalize = "OBJECT_FINALIZE"
)

// StorageObjectEvent は1件のオブジェクト作成通知です
type StorageObjectEvent struct {
	Bucket    string
	ObjectKey string
	EventType string
}

// ToStorageObjectEvent は通知属性からオブジェクトイベントを取り出します
func (m PubSubMessage) ToStorageObjectEvent() StorageObjectEvent {
	return StorageObjectEvent{
		Bucket:    m.Attributes[AttrBucketID],
		ObjectKey: m.Attributes[AttrObjectID],
		EventType: m.Attributes[AttrEventType],
	}
}

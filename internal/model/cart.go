package model

// DefaultStrm 未指定学期时的购物车学期代码
const DefaultStrm = 1228

// ShoppingCart 购物车表 — 对应 shopping_carts
// 同一用户同一学期可能存在多条记录，读取时取最早创建的一条
type ShoppingCart struct {
	CartID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cart_id"`
	UserID string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Strm   int    `gorm:"not null;default:1228"                          json:"strm"`
	BaseModel

	// 关联
	Courses []Course `gorm:"many2many:shopping_cart_courses;joinForeignKey:CartID;joinReferences:ClassNbr" json:"courses,omitempty"`
}

func (ShoppingCart) TableName() string { return "shopping_carts" }

// ShoppingCartCourse 购物车课程关联表 — 对应 shopping_cart_courses（集合语义）
type ShoppingCartCourse struct {
	CartID   string `gorm:"type:uuid;primaryKey"            json:"cart_id"`
	ClassNbr int    `gorm:"primaryKey;autoIncrement:false" json:"class_nbr"`
}

func (ShoppingCartCourse) TableName() string { return "shopping_cart_courses" }

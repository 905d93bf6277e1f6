package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"course-planner/backend/internal/model"
)

// RegisterValidators 注册自定义校验标签，需在路由初始化前调用
//
//	approval_status: 取值必须是已知的审批状态
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding 校验引擎类型不符: %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("approval_status", func(fl validator.FieldLevel) bool {
		_, err := model.ParseApprovalStatus(fl.Field().String())
		return err == nil
	})
}

package basehdl

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	basesvc "voice_reception/internal/api/base/service"
	"voice_reception/internal/common"
	"voice_reception/internal/global"
	"voice_reception/internal/utility"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// FilterOptions cấu hình việc xử lý filter từ query string.
// DeniedFields: các field không cho phép client filter trực tiếp.
// AllowedOperators: danh sách operator MongoDB được phép ($eq, $in, ...). Rỗng = cho phép tất cả.
// MaxFields: giới hạn số field trong một filter để tránh query quá phức tạp.
type FilterOptions struct {
	DeniedFields     []string
	AllowedOperators []string
	MaxFields        int
}

// BaseHandler chứa các phương thức xử lý request CRUD chung cho tất cả domain handler.
// Type Parameters:
//   - T: Model tương ứng với collection
//   - CreateInput: DTO cho thao tác tạo mới
//   - UpdateInput: DTO cho thao tác cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]

	filterOptions FilterOptions
}

// NewBaseHandler tạo mới một BaseHandler với filter options mặc định.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: service,
		filterOptions: FilterOptions{
			MaxFields: 20,
		},
	}
}

// SetFilterOptions ghi đè filter options (gọi khi khởi tạo domain handler nếu cần siết filter).
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetFilterOptions(opts FilterOptions) {
	if opts.MaxFields <= 0 {
		opts.MaxFields = 20
	}
	h.filterOptions = opts
}

// ParseRequestBody parse body request thành struct đích.
// Dùng json.Unmarshal trực tiếp trên raw body để giữ nguyên thông báo lỗi của encoding/json.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return fmt.Errorf("body rỗng")
	}
	return json.Unmarshal(body, out)
}

// ParseRequestParams bind URI params vào struct theo struct tag `uri`.
// transform:"str_objectid" trên field sẽ validate giá trị là ObjectID hợp lệ ngay khi bind.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestParams(c fiber.Ctx, out interface{}) error {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Struct {
		return common.NewError(common.ErrCodeInternalServer, "ParseRequestParams yêu cầu con trỏ struct", common.StatusInternalServerError, nil)
	}
	structVal := outVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		uriTag := field.Tag.Get("uri")
		if uriTag == "" || !field.IsExported() {
			continue
		}
		value := c.Params(uriTag)
		if value == "" {
			continue
		}
		if field.Type.Kind() != reflect.String {
			continue
		}
		if hasTransformDirective(field.Tag.Get("transform"), "str_objectid") && !primitive.IsValidObjectID(value) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Param '%s' có giá trị '%s' không đúng định dạng MongoDB ObjectID", uriTag, value),
				common.StatusBadRequest,
				nil,
			)
		}
		structVal.Field(i).SetString(value)
	}

	if err := h.ValidateInput(out); err != nil {
		return err
	}
	return nil
}

// ValidateInput validate struct input với global validator (struct tag `validate`).
// Trả về *common.Error với details là map field -> rule bị vi phạm để client dễ sửa.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	err := global.Validate.Struct(input)
	if err == nil {
		return nil
	}

	details := make(map[string]interface{})
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			msg := fieldErr.Tag()
			if fieldErr.Param() != "" {
				msg = fmt.Sprintf("%s=%s", fieldErr.Tag(), fieldErr.Param())
			}
			details[fieldErr.Field()] = msg
		}
	}

	return common.NewError(
		common.ErrCodeValidationInput,
		"Dữ liệu đầu vào không hợp lệ",
		common.StatusBadRequest,
		details,
	)
}

// TransformCreateInputToModel chuyển DTO tạo mới sang Model theo tên field + struct tag `transform`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	model := new(T)
	if err := transformStruct(input, model); err != nil {
		return nil, err
	}
	return model, nil
}

// TransformUpdateInputToModel chuyển DTO cập nhật sang Model theo tên field + struct tag `transform`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	model := new(T)
	if err := transformStruct(input, model); err != nil {
		return nil, err
	}
	return model, nil
}

// transformStruct copy các field cùng tên từ src (DTO) sang dst (Model).
// Struct tag `transform` trên DTO điều khiển việc convert kiểu, format: "<directive>[,option...]":
//   - str_objectid:      string -> primitive.ObjectID
//   - str_objectid_ptr:  string -> *primitive.ObjectID
//   - str_objectid_arr:  []string -> []primitive.ObjectID
//   - string,default=x:  string rỗng -> giá trị mặc định x
//
// Option "optional": giá trị rỗng được bỏ qua thay vì báo lỗi.
// Field không có tag sẽ assign trực tiếp nếu kiểu tương thích; struct lồng nhau cùng kiểu copy nguyên khối.
func transformStruct(src interface{}, dst interface{}) error {
	srcVal := reflect.ValueOf(src)
	dstVal := reflect.ValueOf(dst)
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Kind() == reflect.Ptr {
		dstVal = dstVal.Elem()
	}
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return fmt.Errorf("transform chỉ hỗ trợ struct, nhận được %s -> %s", srcVal.Kind(), dstVal.Kind())
	}

	srcType := srcVal.Type()
	for i := 0; i < srcType.NumField(); i++ {
		srcField := srcType.Field(i)
		if !srcField.IsExported() {
			continue
		}

		// Embedded struct: xử lý đệ quy trên cùng dst
		if srcField.Anonymous && srcField.Type.Kind() == reflect.Struct {
			if err := transformStruct(srcVal.Field(i).Addr().Interface(), dst); err != nil {
				return err
			}
			continue
		}

		dstField := dstVal.FieldByName(srcField.Name)
		if !dstField.IsValid() || !dstField.CanSet() {
			continue
		}

		srcFieldVal := srcVal.Field(i)
		directive, options := parseTransformTag(srcField.Tag.Get("transform"))

		switch directive {
		case "str_objectid", "str_objectid_ptr", "str_objectid_arr":
			if err := assignObjectID(srcField.Name, srcFieldVal, dstField, options["optional"]); err != nil {
				return err
			}
		case "string":
			s := srcFieldVal.String()
			if s == "" {
				s = options["default_value"]
			}
			if dstField.Kind() == reflect.String {
				dstField.SetString(s)
			}
		default:
			if err := assignValue(srcFieldVal, dstField); err != nil {
				return fmt.Errorf("field %s: %w", srcField.Name, err)
			}
		}
	}
	return nil
}

// hasTransformDirective kiểm tra transform tag có chứa directive cho trước không.
func hasTransformDirective(tag string, directive string) bool {
	d, _ := parseTransformTag(tag)
	return d == directive
}

// parseTransformTag tách transform tag thành directive + options.
// "str_objectid_ptr,optional" -> ("str_objectid_ptr", {optional:"true"})
// "string,default=human" -> ("string", {default_value:"human"})
func parseTransformTag(tag string) (string, map[string]string) {
	options := map[string]string{}
	if tag == "" {
		return "", options
	}
	parts := strings.Split(tag, ",")
	for _, part := range parts[1:] {
		if part == "optional" {
			options["optional"] = "true"
			continue
		}
		if strings.HasPrefix(part, "default=") {
			options["default_value"] = strings.TrimPrefix(part, "default=")
		}
	}
	return parts[0], options
}

// assignObjectID convert string/(*string)/[]string sang ObjectID tương ứng trên dst field.
func assignObjectID(fieldName string, src reflect.Value, dst reflect.Value, optional string) error {
	switch src.Kind() {
	case reflect.String:
		s := src.String()
		if s == "" {
			return nil // giữ zero value (field optional hoặc DTO không gửi)
		}
		if !primitive.IsValidObjectID(s) {
			if optional == "true" {
				return nil
			}
			return fmt.Errorf("field %s: '%s' không đúng định dạng ObjectID", fieldName, s)
		}
		oid := utility.String2ObjectID(s)
		if dst.Kind() == reflect.Ptr {
			dst.Set(reflect.ValueOf(&oid))
		} else if dst.Type() == reflect.TypeOf(primitive.ObjectID{}) {
			dst.Set(reflect.ValueOf(oid))
		} else if dst.Kind() == reflect.String {
			dst.SetString(s)
		}
	case reflect.Ptr:
		if src.IsNil() {
			return nil
		}
		return assignObjectID(fieldName, src.Elem(), dst, optional)
	case reflect.Slice:
		if src.IsNil() {
			return nil
		}
		oids := make([]primitive.ObjectID, 0, src.Len())
		for i := 0; i < src.Len(); i++ {
			s := src.Index(i).String()
			if !primitive.IsValidObjectID(s) {
				if optional == "true" {
					continue
				}
				return fmt.Errorf("field %s[%d]: '%s' không đúng định dạng ObjectID", fieldName, i, s)
			}
			oids = append(oids, utility.String2ObjectID(s))
		}
		dst.Set(reflect.ValueOf(oids))
	default:
		return fmt.Errorf("field %s: transform ObjectID không hỗ trợ kiểu %s", fieldName, src.Kind())
	}
	return nil
}

// assignValue gán giá trị src vào dst nếu kiểu tương thích, hỗ trợ đệ quy struct khác kiểu.
func assignValue(src reflect.Value, dst reflect.Value) error {
	if src.Type() == dst.Type() {
		dst.Set(src)
		return nil
	}
	if src.Type().ConvertibleTo(dst.Type()) && src.Kind() != reflect.Slice && src.Kind() != reflect.Map {
		dst.Set(src.Convert(dst.Type()))
		return nil
	}
	// Struct khác kiểu nhưng cùng shape (vd: DTO con -> Model con): transform đệ quy
	if src.Kind() == reflect.Struct && dst.Kind() == reflect.Struct {
		if !src.CanAddr() {
			tmp := reflect.New(src.Type())
			tmp.Elem().Set(src)
			src = tmp.Elem()
		}
		return transformStruct(src.Addr().Interface(), dst.Addr().Interface())
	}
	if src.Kind() == reflect.Slice && dst.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := assignValue(src.Index(i), out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return nil
		}
		if dst.Kind() == reflect.Ptr {
			out := reflect.New(dst.Type().Elem())
			if err := assignValue(src.Elem(), out.Elem()); err != nil {
				return err
			}
			dst.Set(out)
			return nil
		}
		return assignValue(src.Elem(), dst)
	}
	if dst.Kind() == reflect.Ptr {
		out := reflect.New(dst.Type().Elem())
		if err := assignValue(src, out.Elem()); err != nil {
			return err
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("không thể gán %s vào %s", src.Type(), dst.Type())
}

// ProcessFilter parse và chuẩn hóa filter từ query string.
// Các bước: parse JSON -> kiểm tra DeniedFields/AllowedOperators/MaxFields -> convert các giá trị
// hex 24 ký tự của field _id hoặc *Id sang ObjectID để filter khớp với dữ liệu trong MongoDB.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (bson.M, error) {
	filterStr := c.Query("filter", "{}")

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(filterStr), &raw); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter phải là một JSON object. Giá trị nhận được: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	if h.filterOptions.MaxFields > 0 && len(raw) > h.filterOptions.MaxFields {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter có quá nhiều điều kiện (%d), tối đa %d", len(raw), h.filterOptions.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	for _, denied := range h.filterOptions.DeniedFields {
		if _, exists := raw[denied]; exists {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Không được phép filter theo field '%s'", denied),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if err := h.validateOperators(raw); err != nil {
		return nil, err
	}

	return normalizeFilter(raw), nil
}

// validateOperators kiểm tra đệ quy các key bắt đầu bằng $ so với AllowedOperators.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateOperators(raw map[string]interface{}) error {
	if len(h.filterOptions.AllowedOperators) == 0 {
		return nil
	}
	for key, value := range raw {
		if strings.HasPrefix(key, "$") && !utility.Contains(h.filterOptions.AllowedOperators, key) {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Operator '%s' không được phép trong filter", key),
				common.StatusBadRequest,
				nil,
			)
		}
		if nested, ok := value.(map[string]interface{}); ok {
			if err := h.validateOperators(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeFilter convert đệ quy các giá trị ObjectID dạng string trong filter.
func normalizeFilter(raw map[string]interface{}) bson.M {
	filter := bson.M{}
	for key, value := range raw {
		filter[key] = normalizeFilterValue(key, value)
	}
	return filter
}

func normalizeFilterValue(key string, value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		if isObjectIDFilterKey(key) && primitive.IsValidObjectID(v) {
			return utility.String2ObjectID(v)
		}
		return v
	case map[string]interface{}:
		// Operator lồng nhau: {"_id": {"$in": [...]}}
		nested := bson.M{}
		for opKey, opVal := range v {
			nested[opKey] = normalizeFilterValue(key, opVal)
		}
		return nested
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = normalizeFilterValue(key, item)
		}
		return out
	default:
		return v
	}
}

// isObjectIDFilterKey nhận biết field chứa ObjectID theo convention đặt tên (_id, folderId, crmConnectionId, ...).
func isObjectIDFilterKey(key string) bool {
	return key == "_id" || strings.HasSuffix(key, "Id") || strings.HasSuffix(key, "Ids")
}

// mongoOptionsInput là shape JSON của query param `options`.
type mongoOptionsInput struct {
	Projection map[string]interface{} `json:"projection"`
	Sort       map[string]interface{} `json:"sort"`
	Limit      *int64                 `json:"limit"`
	Skip       *int64                 `json:"skip"`
}

// processMongoOptions parse query param `options` thành FindOneOptions hoặc FindOptions.
// isFindOne = true trả về *options.FindOneOptions, ngược lại *options.FindOptions.
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	optionsStr := c.Query("options", "{}")

	var input mongoOptionsInput
	if err := json.Unmarshal([]byte(optionsStr), &input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options phải là một JSON object. Giá trị nhận được: %s", optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	// Giữ thứ tự sort ổn định bằng bson.D
	var sortDoc bson.D
	for field, order := range input.Sort {
		sortDoc = append(sortDoc, bson.E{Key: field, Value: order})
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if input.Projection != nil {
			opts.SetProjection(input.Projection)
		}
		if sortDoc != nil {
			opts.SetSort(sortDoc)
		}
		if input.Skip != nil {
			opts.SetSkip(*input.Skip)
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if input.Projection != nil {
		opts.SetProjection(input.Projection)
	}
	if sortDoc != nil {
		opts.SetSort(sortDoc)
	}
	if input.Limit != nil {
		opts.SetLimit(*input.Limit)
	}
	if input.Skip != nil {
		opts.SetSkip(*input.Skip)
	}
	return opts, nil
}

// buildPartialUpdateData convert model sang UpdateData, chỉ giữ field non-zero trong $set.
// Field client không gửi có zero value sau transform nên không lọt vào $set,
// nhờ đó UpdateById là partial update thật sự.
func (h *BaseHandler[T, CreateInput, UpdateInput]) buildPartialUpdateData(model *T) (*basesvc.UpdateData, error) {
	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	modelMap, err := utility.ToMap(model)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Lỗi convert model sang map: %v", err),
			common.StatusInternalServerError,
			err,
		)
	}
	for k, v := range modelMap {
		if rv := reflect.ValueOf(v); rv.IsValid() && !rv.IsZero() {
			updateData.Set[k] = v
		}
	}
	return updateData, nil
}

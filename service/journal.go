package service

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"
	"prism/common/types"
	"prism/model"
)

// Journal stores finished relays in MySQL.
type Journal struct {
	db *gorm.DB
}

func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Save(ctx context.Context, rec *model.MintRecord) error {
	return j.db.WithContext(ctx).Create(rec).Error
}

// ByPaymentHash returns every mint made for a payment, oldest first.
func (j *Journal) ByPaymentHash(ctx context.Context, hash types.Hash) (data []model.MintRecord, err error) {
	err = j.db.WithContext(ctx).Where("payment_tx_hash=?", string(hash)).Order("id").Find(&data).Error
	return
}

// MintsRes mint journal paging return parameters
type MintsRes struct {
	Total int64              `json:"total"` //Number of journaled mints
	Mints []model.MintRecord `json:"mints"` //Mints of the page, newest first
}

func (j *Journal) List(ctx context.Context, page, size int) (res MintsRes, err error) {
	db := j.db.WithContext(ctx)
	err = db.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&res.Mints).Error
	if err != nil {
		return
	}
	err = db.Model(&model.MintRecord{}).Count(&res.Total).Error
	return
}

func mintedRecord(requestId string, res *MintResult) *model.MintRecord {
	return &model.MintRecord{
		RequestId:     requestId,
		PaymentTxHash: string(res.PaymentTxHash),
		MintTxHash:    string(res.MintTxHash),
		Sender:        string(res.SenderAddress),
		Colors:        joinColors(res.HexColors),
		Recipients:    encodeMatches(res.RecipientMatches),
		ImageCid:      string(res.ImageContentId),
		MetadataCid:   string(res.MetadataContentId),
		MetadataUrl:   res.MetadataViewUrl,
		Status:        model.MintStatusMinted,
	}
}

func unconfirmedRecord(requestId string, p *PendingMint) *model.MintRecord {
	recipients, _ := json.Marshal(p.Recipients)
	return &model.MintRecord{
		RequestId:     requestId,
		PaymentTxHash: string(p.PaymentTxHash),
		MintTxHash:    string(p.MintTxHash),
		Sender:        string(p.Sender),
		Colors:        joinColors(p.Colors),
		Recipients:    string(recipients),
		ImageCid:      string(p.ImageCID),
		MetadataCid:   string(p.MetadataCID),
		MetadataUrl:   p.MetadataUrl,
		Status:        model.MintStatusUnconfirmed,
	}
}

func joinColors(colors []types.HexColor) string {
	s := make([]string, len(colors))
	for i, c := range colors {
		s[i] = string(c)
	}
	return strings.Join(s, ",")
}

func encodeMatches(matches []RecipientMatch) string {
	data, err := json.Marshal(matches)
	if err != nil {
		return "[]"
	}
	return string(data)
}

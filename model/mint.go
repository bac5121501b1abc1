package model

import "time"

const (
	MintStatusMinted      = "minted"
	MintStatusUnconfirmed = "unconfirmed"
)

// MintRecord one relay that reached the chain
type MintRecord struct {
	Id            uint64    `json:"id" gorm:"primaryKey"`
	RequestId     string    `json:"request_id" gorm:"type:CHAR(36)"`               //Request id of the relay call
	PaymentTxHash string    `json:"payment_tx_hash" gorm:"type:CHAR(66);index"`    //Payment transaction, not unique: resubmission mints again
	MintTxHash    string    `json:"mint_tx_hash" gorm:"type:CHAR(66);uniqueIndex"` //Mint transaction
	Sender        string    `json:"sender" gorm:"type:CHAR(42);index"`             //Payer and receiver of the artwork
	Colors        string    `json:"colors"`                                        //Comma separated #RRGGBB list
	Recipients    string    `json:"recipients" gorm:"type:JSON"`                   //JSON encoded recipient matches
	ImageCid      string    `json:"image_cid"`                                     //IPFS content id of the image
	MetadataCid   string    `json:"metadata_cid"`                                  //IPFS content id of the metadata
	MetadataUrl   string    `json:"metadata_url"`                                  //Token URI
	Status        string    `json:"status" gorm:"type:VARCHAR(16);index"`          //minted or unconfirmed
	CreatedAt     time.Time `json:"created_at" gorm:"index:,sort:DESC"`
}
